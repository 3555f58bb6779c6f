//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("PwmeterNew", js.FuncOf(newMeter))
	js.Global().Set("PwmeterEvaluate", js.FuncOf(evaluate))
	js.Global().Set("PwmeterEvaluateBatch", js.FuncOf(evaluateBatch))
	js.Global().Set("PwmeterLoadDictionary", js.FuncOf(loadDictionary))
	js.Global().Set("PwmeterReady", js.FuncOf(ready))
	js.Global().Set("PwmeterClose", js.FuncOf(closeMeter))

	// Keep WASM running
	<-make(chan struct{})
}
