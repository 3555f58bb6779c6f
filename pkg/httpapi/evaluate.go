package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/praetorian-inc/pwmeter/pkg/dictionary"
	"github.com/praetorian-inc/pwmeter/pkg/pattern"
	"github.com/praetorian-inc/pwmeter/pkg/present"
	"github.com/praetorian-inc/pwmeter/pkg/types"
)

// maxBodyBytes bounds evaluate request bodies.
const maxBodyBytes = 64 << 10

var tooLongMessage = fmt.Sprintf("password exceeds %d characters", types.MaxLength)

// Evaluator scores passwords. *pwmeter.Meter implements it.
type Evaluator interface {
	Evaluate(password string) types.Report
	Explain(password string) pattern.Result
	Dictionary() *dictionary.Store
}

// EvaluateRequest is the body of POST /api/v1/evaluate.
type EvaluateRequest struct {
	Password string `json:"password"`
	Explain  bool   `json:"explain,omitempty"`
}

// EvaluateHandler scores one password per request.
type EvaluateHandler struct {
	Meter Evaluator
}

// Evaluate handles POST /api/v1/evaluate.
func (h *EvaluateHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, http.StatusBadRequest, "invalid_body", "request body must be JSON with a password field")
		return
	}
	if types.TooLong(req.Password) {
		RespondError(w, r, http.StatusBadRequest, "password_too_long", tooLongMessage)
		return
	}

	RespondJSON(w, r, http.StatusOK, result(h.Meter, req.Password, req.Explain))
}

func result(meter Evaluator, password string, explain bool) interface{} {
	report := meter.Evaluate(password)
	if !explain {
		return present.Envelope(report, nil)
	}
	patterns := meter.Explain(password)
	return present.Envelope(report, &patterns)
}
