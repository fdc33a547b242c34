package api

import (
	"encoding/json"
	"net/http"

	"github.com/zparse/zparse/convert"
	"github.com/zparse/zparse/encode"
	"github.com/zparse/zparse/format"
	"github.com/zparse/zparse/parse"
)

type parseRequest struct {
	Content string        `json:"content"`
	Format  format.Format `json:"format"`
}

type convertRequest struct {
	Content string        `json:"content"`
	From    format.Format `json:"from"`
	To      format.Format `json:"to"`
}

type parseResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// convertResponse carries the converted document on success and the
// rendered error message on failure, both in the content field.
type convertResponse struct {
	Status  string `json:"status"`
	Content string `json:"content"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) formats(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	for _, f := range format.AllFormats() {
		names = append(names, f.String())
	}
	writeJSON(w, names)
}

func (s *Server) parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, parseResponse{Status: "error", Error: err.Error()})
		return
	}
	data, err := s.parseToJSON(req.Content, req.Format)
	if err != nil {
		s.Spec.Log.Debug("parse failed", "format", req.Format, "error", err)
		writeJSON(w, parseResponse{Status: "error", Error: err.Error()})
		return
	}
	writeJSON(w, parseResponse{Status: "ok", Data: data})
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, convertResponse{Status: "error", Content: err.Error()})
		return
	}
	out, err := convert.Bytes([]byte(req.Content), req.From, req.To, s.convertOpts())
	if err != nil {
		s.Spec.Log.Debug("convert failed", "from", req.From, "to", req.To, "error", err)
		writeJSON(w, convertResponse{Status: "error", Content: err.Error()})
		return
	}
	writeJSON(w, convertResponse{Status: "ok", Content: string(out)})
}

// parseToJSON runs the document through the converter so the response
// data is plain JSON regardless of the input format.
func (s *Server) parseToJSON(content string, f format.Format) (json.RawMessage, error) {
	opts := s.convertOpts()
	if opts == nil {
		opts = &convert.Options{}
	}
	opts.Encode = append(opts.Encode, encode.EncodeWire(true))
	out, err := convert.Bytes([]byte(content), f, format.JSONFormat, opts)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(out), nil
}

func (s *Server) convertOpts() *convert.Options {
	if s.Spec.Limits == nil {
		return nil
	}
	return &convert.Options{
		Parse: []parse.ParseOption{parse.ParseLimits(s.Spec.Limits)},
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
