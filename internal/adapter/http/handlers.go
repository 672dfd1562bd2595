package http

import (
	"context"
	"net/http"

	"github.com/Strob0t/animalfarm/internal/domain/animal"
	"github.com/Strob0t/animalfarm/internal/service"
)

// Handlers serves the farm API.
type Handlers struct {
	Farm *service.FarmService
}

type createResponse struct {
	Message string        `json:"message"`
	Animal  animal.Status `json:"animal"`
}

type listResponse struct {
	Count   int             `json:"count"`
	Animals []animal.Status `json:"animals"`
}

type welcomeResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

var endpoints = map[string]string{
	"GET /animals":                       "List all animals",
	"POST /animals/bird":                 "Create a new bird",
	"POST /animals/dog":                  "Create a new dog",
	"GET /animals/:name":                 "Get animal details",
	"DELETE /animals/:name":              "Remove animal from farm",
	"POST /animals/:name/eat":            "Make animal eat",
	"POST /animals/:name/sleep":          "Make animal sleep",
	"PUT /animals/:name/hungry":          "Set hungry state",
	"PUT /animals/:name/sleepy":          "Set sleepy state",
	"PUT /animals/:name/duty":            "Set animal duty",
	"POST /animals/:name/perform-duty":   "Perform duty",
	"PUT /animals/:name/action":          "Set animal action",
	"POST /animals/:name/perform-action": "Perform action",
	"GET /health":                        "Service health",
	"GET /metrics":                       "Farm counters",
	"GET /ws":                            "Live animal events (WebSocket)",
	"POST /mcp":                          "Model Context Protocol endpoint",
}

// Welcome lists the available endpoints.
func (h *Handlers) Welcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, welcomeResponse{Message: "Animal Farm API!", Endpoints: endpoints})
}

// Health reports uptime and the animal count.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	health, err := h.Farm.Health(r.Context())
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, health)
}

// Metrics reports farm counters.
func (h *Handlers) Metrics(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Farm.Summary(r.Context())
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// ListAnimals returns every animal's status in insertion order.
func (h *Handlers) ListAnimals(w http.ResponseWriter, r *http.Request) {
	list, err := h.Farm.List(r.Context())
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Count: len(list), Animals: list})
}

// CreateBird handles POST /animals/bird.
func (h *Handlers) CreateBird(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, animal.KindBird)
}

// CreateDog handles POST /animals/dog.
func (h *Handlers) CreateDog(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, animal.KindDog)
}

func (h *Handlers) create(w http.ResponseWriter, r *http.Request, kind animal.Kind) {
	fields, ok := readFields(w, r)
	if !ok {
		return
	}
	// The path decides the kind; capabilities of the other kind are ignored.
	req := animal.CreateRequest{Kind: kind}
	if v, present := fields["name"]; present && v != nil {
		name, isString := v.(string)
		if !isString {
			writeError(w, http.StatusBadRequest, "name must be a string value")
			return
		}
		req.Name = name
	}
	flags := []struct {
		field string
		dst   *bool
	}{
		{"canFly", &req.CanFly},
		{"canCrow", &req.CanCrow},
		{"canBark", &req.CanBark},
		{"canChase", &req.CanChase},
	}
	for _, f := range flags {
		v, present := fields[f.field]
		if !present || v == nil {
			continue
		}
		b, isBool := v.(bool)
		if !isBool {
			writeError(w, http.StatusBadRequest, f.field+" must be a boolean value")
			return
		}
		*f.dst = b
	}

	res, err := h.Farm.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createResponse{Message: res.Message, Animal: res.Status})
}

// GetAnimal returns one animal's status.
func (h *Handlers) GetAnimal(w http.ResponseWriter, r *http.Request) {
	name, ok := animalName(w, r)
	if !ok {
		return
	}
	st, err := h.Farm.Get(r.Context(), name)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// DeleteAnimal removes an animal.
func (h *Handlers) DeleteAnimal(w http.ResponseWriter, r *http.Request) {
	name, ok := animalName(w, r)
	if !ok {
		return
	}
	msg, err := h.Farm.Delete(r.Context(), name)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (h *Handlers) Eat(w http.ResponseWriter, r *http.Request) {
	h.byName(w, r, h.Farm.Eat)
}

func (h *Handlers) Sleep(w http.ResponseWriter, r *http.Request) {
	h.byName(w, r, h.Farm.Sleep)
}

// SetHungry handles PUT /animals/{name}/hungry with body {"hungry": bool}.
func (h *Handlers) SetHungry(w http.ResponseWriter, r *http.Request) {
	name, ok := animalName(w, r)
	if !ok {
		return
	}
	v, ok := h.readFlag(w, r, name, "hungry")
	if !ok {
		return
	}
	writeResult(w, r)(h.Farm.SetHungry(r.Context(), name, v))
}

// SetSleepy handles PUT /animals/{name}/sleepy with body {"sleepy": bool}.
func (h *Handlers) SetSleepy(w http.ResponseWriter, r *http.Request) {
	name, ok := animalName(w, r)
	if !ok {
		return
	}
	v, ok := h.readFlag(w, r, name, "sleepy")
	if !ok {
		return
	}
	writeResult(w, r)(h.Farm.SetSleepy(r.Context(), name, v))
}

// SetDuty handles PUT /animals/{name}/duty with body {"duty": string}.
func (h *Handlers) SetDuty(w http.ResponseWriter, r *http.Request) {
	name, ok := animalName(w, r)
	if !ok {
		return
	}
	fields, ok := readFields(w, r)
	if !ok {
		return
	}
	duty, _ := fields["duty"].(string)
	writeResult(w, r)(h.Farm.SetDuty(r.Context(), name, duty))
}

func (h *Handlers) PerformDuty(w http.ResponseWriter, r *http.Request) {
	h.byName(w, r, h.Farm.PerformDuty)
}

// SetAction handles PUT /animals/{name}/action with body {"action": string}.
func (h *Handlers) SetAction(w http.ResponseWriter, r *http.Request) {
	name, ok := animalName(w, r)
	if !ok {
		return
	}
	fields, ok := readFields(w, r)
	if !ok {
		return
	}
	action, _ := fields["action"].(string)
	writeResult(w, r)(h.Farm.SetAction(r.Context(), name, action))
}

func (h *Handlers) PerformAction(w http.ResponseWriter, r *http.Request) {
	h.byName(w, r, h.Farm.PerformAction)
}

// byName runs a body-less operation on the animal named in the path.
func (h *Handlers) byName(w http.ResponseWriter, r *http.Request, op func(context.Context, string) (*service.Result, error)) {
	name, ok := animalName(w, r)
	if !ok {
		return
	}
	writeResult(w, r)(op(r.Context(), name))
}

// readFlag reads a boolean field. An unknown animal is reported before a bad
// field.
func (h *Handlers) readFlag(w http.ResponseWriter, r *http.Request, name, field string) (bool, bool) {
	fields, ok := readFields(w, r)
	if !ok {
		return false, false
	}
	v, ok := fields[field].(bool)
	if ok {
		return v, true
	}
	if _, err := h.Farm.Get(r.Context(), name); err != nil {
		writeDomainError(w, r, err)
		return false, false
	}
	writeError(w, http.StatusBadRequest, field+" must be a boolean value")
	return false, false
}

// writeResult returns a sink for a service call's (result, error) pair.
func writeResult(w http.ResponseWriter, r *http.Request) func(*service.Result, error) {
	return func(res *service.Result, err error) {
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
