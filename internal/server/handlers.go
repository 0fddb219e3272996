package server

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/alexiusacademia/gopipe/internal/colebrook"
	"github.com/alexiusacademia/gopipe/internal/darcy"
	"github.com/alexiusacademia/gopipe/internal/flow"
	"github.com/alexiusacademia/gopipe/internal/hydro"
	"github.com/alexiusacademia/gopipe/internal/version"
)

// ColebrookRequest is the body of POST /api/colebrook
type ColebrookRequest struct {
	Reynolds     float64 `json:"reynolds"`
	RelRoughness float64 `json:"rel_roughness"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

func (s *Server) handleDarcy(w http.ResponseWriter, r *http.Request) {
	var p darcy.Problem
	if !decode(w, r, &p) {
		return
	}
	res, err := darcy.NewSolver(s.opts.Gravity).Solve(p)
	if err != nil {
		writeSolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleColebrook(w http.ResponseWriter, r *http.Request) {
	var req ColebrookRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := colebrook.Solve(req.Reynolds, req.RelRoughness, s.opts)
	if err != nil {
		writeSolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleFlow(w http.ResponseWriter, r *http.Request) {
	var in flow.Input
	if !decode(w, r, &in) {
		return
	}
	res, err := flow.NewSolver(s.opts).Solve(in)
	if err != nil {
		writeSolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return false
	}
	return true
}

// writeSolveError maps domain errors to 422 and anything else to 400
func writeSolveError(w http.ResponseWriter, err error) {
	var de *hydro.DomainError
	if errors.As(err, &de) {
		writeError(w, http.StatusUnprocessableEntity, de.Error())
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("encoding response")
	}
}
