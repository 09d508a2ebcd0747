package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mitchellh/mapstructure"

	"fabsim/model"
)

// queryRequest reads a request from URL query parameters. Missing
// parameters keep their defaults; numbers arrive as strings and are
// converted by mapstructure's weak typing.
func queryRequest(r *http.Request) (model.SimulationRequest, error) {
	req := model.DefaultRequest()
	raw := make(map[string]interface{})
	for key, values := range r.URL.Query() {
		if len(values) > 0 && values[0] != "" {
			raw[key] = values[0]
		}
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &req,
	})
	if err != nil {
		return req, err
	}
	if err := dec.Decode(raw); err != nil {
		return req, fmt.Errorf("bad query: %w", err)
	}
	return req, nil
}

// bodyRequest reads a JSON request body on top of the defaults.
func bodyRequest(r *http.Request) (model.SimulationRequest, error) {
	req := model.DefaultRequest()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("bad body: %w", err)
	}
	return req, nil
}
