package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mapandra/roadroute/pkg/datastructure"
	"github.com/mapandra/roadroute/pkg/server"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type NavigationService interface {
	SnapToNode(ctx context.Context, query datastructure.Coordinate) (datastructure.NodeID, datastructure.Coordinate, error)
	Route(ctx context.Context, src, dst datastructure.Coordinate) (datastructure.RouteResult, error)
	Reload(ctx context.Context) (int, int, error)
}

type NavigationHandler struct {
	svc NavigationService
}

func NavigationRouter(r *chi.Mux, svc NavigationService) {
	handler := &NavigationHandler{svc}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigation", func(r chi.Router) {
			r.Post("/route", handler.Route)
			r.Post("/snap", handler.SnapToNode)
			r.Post("/reload", handler.Reload)
		})
	})
}

type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type RouteRequest struct {
	Src *Coord `json:"src" validate:"required"`
	Dst *Coord `json:"dst" validate:"required"`
}

func (s *RouteRequest) Bind(r *http.Request) error {
	if s.Src == nil || s.Dst == nil {
		return errors.New("invalid request")
	}
	return nil
}

type RouteResponse struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Path     []Coord `json:"path"`
	Polyline string  `json:"polyline"`
	Cost     float64 `json:"cost"`
	Distance float64 `json:"distance"`
}

func RenderRouteResponse(res datastructure.RouteResult) *RouteResponse {
	path := make([]Coord, 0, len(res.Path))
	for _, c := range res.Path {
		path = append(path, Coord{X: c.X, Y: c.Y})
	}
	return &RouteResponse{
		Status:   res.Status.String(),
		Message:  res.Message,
		Path:     path,
		Polyline: datastructure.RenderPath(res.Path),
		Cost:     res.Cost,
		Distance: res.Dist,
	}
}

func (h *NavigationHandler) Route(w http.ResponseWriter, r *http.Request) {
	data := &RouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	src := datastructure.NewCoordinate(data.Src.X, data.Src.Y)
	dst := datastructure.NewCoordinate(data.Dst.X, data.Dst.Y)

	res, err := h.svc.Route(r.Context(), src, dst)
	if err != nil {
		render.Render(w, r, renderServiceError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderRouteResponse(res))
}

type SnapRequest struct {
	Coord *Coord `json:"coord" validate:"required"`
}

func (s *SnapRequest) Bind(r *http.Request) error {
	if s.Coord == nil {
		return errors.New("invalid request")
	}
	return nil
}

type SnapResponse struct {
	NodeID int64 `json:"node_id"`
	Coord  Coord `json:"coord"`
}

func (h *NavigationHandler) SnapToNode(w http.ResponseWriter, r *http.Request) {
	data := &SnapRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	id, coord, err := h.svc.SnapToNode(r.Context(), datastructure.NewCoordinate(data.Coord.X, data.Coord.Y))
	if err != nil {
		render.Render(w, r, renderServiceError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &SnapResponse{
		NodeID: int64(id),
		Coord:  Coord{X: coord.X, Y: coord.Y},
	})
}

type ReloadResponse struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
}

func (h *NavigationHandler) Reload(w http.ResponseWriter, r *http.Request) {
	nodes, edges, err := h.svc.Reload(r.Context())
	if err != nil {
		render.Render(w, r, renderServiceError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &ReloadResponse{Nodes: nodes, Edges: edges})
}

func renderServiceError(err error) render.Renderer {
	var coded *server.Error
	if errors.As(err, &coded) {
		switch coded.Code() {
		case server.ErrNotFound:
			return ErrNotFoundRend(err)
		case server.ErrBadParamInput:
			return ErrInvalidRequest(err)
		}
	}
	return ErrInternalServerErrorRend(errors.New("internal server error"))
}

// ErrResponse is the error body shared by every endpoint.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrNotFoundRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 404,
		StatusText:     "Resource not found.",
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}
