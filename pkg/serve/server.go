// Package serve implements a newline-delimited JSON protocol over a pair of
// streams (usually stdin/stdout) so other processes can use the meter
// without linking Go code.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/praetorian-inc/pwmeter/pkg/dictionary"
	"github.com/praetorian-inc/pwmeter/pkg/pattern"
	"github.com/praetorian-inc/pwmeter/pkg/present"
	"github.com/praetorian-inc/pwmeter/pkg/types"
)

// Version is the server protocol version
const Version = "1.0.0"

// MaxBatchSize caps the number of passwords in one evaluate_batch request.
const MaxBatchSize = 10000

var tooLongError = fmt.Sprintf("password exceeds %d characters", types.MaxLength)

// Evaluator scores passwords. *pwmeter.Meter implements it.
type Evaluator interface {
	Evaluate(password string) types.Report
	Explain(password string) pattern.Result
	Dictionary() *dictionary.Store
}

// Server manages the streaming evaluator
type Server struct {
	meter   Evaluator
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a new streaming server
func NewServer(meter Evaluator, in io.Reader, out io.Writer) *Server {
	return &Server{
		meter:   meter,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run starts the server main loop
func (s *Server) Run(ctx context.Context) error {
	// Send ready signal
	s.sendReady()

	// Use buffered channels for incoming requests
	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until input closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(req Request) bool {
	switch req.Type {
	case "evaluate":
		s.handleEvaluate(req.Payload)
	case "evaluate_batch":
		s.handleEvaluateBatch(req.Payload)
	case "status":
		s.handleStatus()
	case "close":
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	s.send("ready", ReadyData{Version: Version})
}

func (s *Server) handleEvaluate(payload json.RawMessage) {
	var p EvaluatePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("evaluate", err.Error())
		return
	}
	if types.TooLong(p.Password) {
		s.sendError("evaluate", tooLongError)
		return
	}

	s.send("evaluate", s.result(p.Password, p.Explain))
}

func (s *Server) handleEvaluateBatch(payload json.RawMessage) {
	var p EvaluateBatchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("evaluate_batch", err.Error())
		return
	}
	if len(p.Passwords) > MaxBatchSize {
		s.sendError("evaluate_batch", "batch too large")
		return
	}

	for i, pw := range p.Passwords {
		if types.TooLong(pw) {
			s.sendError("evaluate_batch", fmt.Sprintf("passwords[%d]: %s", i, tooLongError))
			return
		}
	}

	results := make([]json.RawMessage, 0, len(p.Passwords))
	for _, pw := range p.Passwords {
		data, err := json.Marshal(s.result(pw, p.Explain))
		if err != nil {
			s.sendError("evaluate_batch", err.Error())
			return
		}
		results = append(results, data)
	}
	s.send("evaluate_batch", BatchData{Results: results})
}

func (s *Server) handleStatus() {
	dict := s.meter.Dictionary()
	status := StatusData{
		Version:         Version,
		DictionaryReady: dict.IsReady(),
		DictionarySize:  dict.Len(),
	}
	if err := dict.Err(); err != nil {
		status.DictionaryError = err.Error()
	}
	s.send("status", status)
}

func (s *Server) result(password string, explain bool) interface{} {
	report := s.meter.Evaluate(password)
	if !explain {
		return present.Envelope(report, nil)
	}
	patterns := s.meter.Explain(password)
	return present.Envelope(report, &patterns)
}

func (s *Server) send(reqType string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.sendError(reqType, err.Error())
		return
	}
	s.encoder.Encode(Response{
		Success: true,
		Type:    reqType,
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}
