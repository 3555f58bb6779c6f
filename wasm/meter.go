//go:build wasm

package main

import (
	"encoding/json"
	"sync"
	"syscall/js"

	"github.com/praetorian-inc/pwmeter"
	"github.com/praetorian-inc/pwmeter/pkg/pattern"
)

var (
	meters   = make(map[int]*pwmeter.Meter)
	metersMu sync.RWMutex
	nextID   int
)

// meterOptions is the JSON accepted by PwmeterNew.
type meterOptions struct {
	// Words replaces the embedded common-password list when set.
	Words            []string `json:"words"`
	NoDictionary     bool     `json:"no_dictionary"`
	KeyboardPatterns []string `json:"keyboard_patterns"`
}

// evaluation is the JSON returned per password.
type evaluation struct {
	pwmeter.Report
	Patterns *pattern.Result `json:"patterns,omitempty"`
}

// newMeter creates a meter. The optional argument is a meterOptions JSON.
// JS: PwmeterNew([optionsJSON]) -> {handle} or {error}
func newMeter(this js.Value, args []js.Value) interface{} {
	var opts meterOptions
	if len(args) > 0 && args[0].Type() == js.TypeString && args[0].String() != "" {
		if err := json.Unmarshal([]byte(args[0].String()), &opts); err != nil {
			return map[string]interface{}{"error": "failed to parse options JSON: " + err.Error()}
		}
	}

	var meterOpts []pwmeter.Option
	switch {
	case opts.NoDictionary:
		meterOpts = append(meterOpts, pwmeter.WithoutDictionary())
	case len(opts.Words) > 0:
		meterOpts = append(meterOpts, pwmeter.WithWords(opts.Words...))
	}
	if len(opts.KeyboardPatterns) > 0 {
		meterOpts = append(meterOpts, pwmeter.WithKeyboardPatterns(opts.KeyboardPatterns...))
	}

	m, err := pwmeter.New(meterOpts...)
	if err != nil {
		return map[string]interface{}{"error": "failed to create meter: " + err.Error()}
	}

	metersMu.Lock()
	id := nextID
	nextID++
	meters[id] = m
	metersMu.Unlock()

	return map[string]interface{}{"handle": id}
}

func lookup(handle int) (*pwmeter.Meter, bool) {
	metersMu.RLock()
	defer metersMu.RUnlock()
	m, ok := meters[handle]
	return m, ok
}

func evaluateOne(m *pwmeter.Meter, password string, explain bool) evaluation {
	res := evaluation{Report: m.Evaluate(password)}
	if explain {
		p := m.Explain(password)
		res.Patterns = &p
	}
	return res
}

// evaluate scores one password.
// JS: PwmeterEvaluate(handle, password, [explain]) -> JSON report or {error}
func evaluate(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and password arguments required"}
	}

	m, ok := lookup(args[0].Int())
	if !ok {
		return map[string]interface{}{"error": "invalid meter handle"}
	}
	explain := len(args) > 2 && args[2].Truthy()

	jsonBytes, err := json.Marshal(evaluateOne(m, args[1].String(), explain))
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal report: " + err.Error()}
	}
	return string(jsonBytes)
}

// evaluateBatch scores a JSON array of passwords.
// JS: PwmeterEvaluateBatch(handle, passwordsJSON) -> JSON reports or {error}
func evaluateBatch(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and passwordsJSON arguments required"}
	}

	m, ok := lookup(args[0].Int())
	if !ok {
		return map[string]interface{}{"error": "invalid meter handle"}
	}

	var passwords []string
	if err := json.Unmarshal([]byte(args[1].String()), &passwords); err != nil {
		return map[string]interface{}{"error": "failed to parse passwords JSON: " + err.Error()}
	}

	results := make([]evaluation, len(passwords))
	for i, p := range passwords {
		results[i] = evaluateOne(m, p, false)
	}

	jsonBytes, err := json.Marshal(results)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal reports: " + err.Error()}
	}
	return string(jsonBytes)
}

// loadDictionary replaces the meter's common-password list with a
// newline-delimited string, typically fetched by the page.
// JS: PwmeterLoadDictionary(handle, text) -> {count} or {error}
func loadDictionary(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and text arguments required"}
	}

	m, ok := lookup(args[0].Int())
	if !ok {
		return map[string]interface{}{"error": "invalid meter handle"}
	}

	n := m.Dictionary().LoadString(args[1].String())
	return map[string]interface{}{"count": n}
}

// ready reports whether the dictionary has finished loading.
// JS: PwmeterReady(handle) -> bool
func ready(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return false
	}
	m, ok := lookup(args[0].Int())
	if !ok {
		return false
	}
	return m.Dictionary().IsReady()
}

// closeMeter stops a meter and releases its handle.
// JS: PwmeterClose(handle)
func closeMeter(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "handle argument required"}
	}

	handle := args[0].Int()

	metersMu.Lock()
	m, ok := meters[handle]
	if ok {
		delete(meters, handle)
	}
	metersMu.Unlock()

	if !ok {
		return map[string]interface{}{"error": "invalid meter handle"}
	}

	m.Close()
	return nil
}
