package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bibbank/loanrisk/internal/application/dto"
	"github.com/bibbank/loanrisk/internal/domain/model"
	"github.com/bibbank/loanrisk/internal/domain/valueobject"
	"github.com/bibbank/loanrisk/internal/presentation/middleware"
	"github.com/bibbank/loanrisk/pkg/auth"
)

//go:embed templates/*.html
var templateFS embed.FS

var formTemplate = template.Must(template.New("form.html").Funcs(template.FuncMap{
	"num": formatNumber,
}).ParseFS(templateFS, "templates/form.html"))

// maxFormBytes bounds form and JSON bodies.
const maxFormBytes = 64 << 10

type PredictRiskExecutor interface {
	Execute(ctx context.Context, req dto.PredictRiskRequest) (dto.PredictionResponse, error)
}

type GetPredictionExecutor interface {
	Execute(ctx context.Context, req dto.GetPredictionRequest) (dto.PredictionResponse, error)
}

// Options tunes the handler. Zero values disable the feature.
type Options struct {
	// Limiter throttles prediction requests from the form and the API.
	Limiter *middleware.RateLimiter
	// APIAuth requires a bearer token on /api/v1 routes.
	APIAuth *auth.JWTService
}

// Handler serves the applicant form and the JSON prediction API.
type Handler struct {
	predict PredictRiskExecutor
	get     GetPredictionExecutor
	logger  *slog.Logger
	opts    Options
}

func NewHandler(predict PredictRiskExecutor, get GetPredictionExecutor, logger *slog.Logger, opts Options) *Handler {
	return &Handler{predict: predict, get: get, logger: logger, opts: opts}
}

// RegisterRoutes attaches the form and API routes to mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.showForm)
	mux.Handle("POST /predict", h.limited(http.HandlerFunc(h.submitForm)))
	mux.Handle("POST /api/v1/predictions", h.api(h.limited(http.HandlerFunc(h.createPrediction))))
	mux.Handle("GET /api/v1/predictions/{id}", h.api(http.HandlerFunc(h.getPrediction)))
}

func (h *Handler) limited(next http.Handler) http.Handler {
	if h.opts.Limiter == nil {
		return next
	}
	return middleware.RateLimit(h.opts.Limiter)(next)
}

func (h *Handler) api(next http.Handler) http.Handler {
	if h.opts.APIAuth == nil {
		return next
	}
	return auth.HTTPMiddleware(h.opts.APIAuth)(next)
}

// ---------------------------------------------------------------------------
// Form
// ---------------------------------------------------------------------------

type fieldView struct {
	Spec  model.FieldSpec
	Value string
	Error string
}

type purposeOption struct {
	Value    string
	Label    string
	Selected bool
}

type formView struct {
	Result       *dto.PredictionResponse
	Error        string
	PurposeError string
	Fields       []fieldView
	Purposes     []purposeOption
}

func newFormView(values url.Values) formView {
	defaults := dto.DefaultPredictRiskRequest()
	purpose := values.Get(model.FieldPurpose)
	if purpose == "" {
		purpose = defaults.Purpose
	}

	view := formView{}
	for _, p := range valueobject.Purposes() {
		view.Purposes = append(view.Purposes, purposeOption{
			Value:    p.String(),
			Label:    p.Label(),
			Selected: p.String() == purpose,
		})
	}
	for _, spec := range model.Fields() {
		value := values.Get(spec.Name)
		if value == "" {
			value = formatNumber(spec.Default)
		}
		view.Fields = append(view.Fields, fieldView{Spec: spec, Value: value})
	}
	return view
}

func (v *formView) applyErrors(err *model.InvalidApplicantError) {
	v.Error = err.Error()
	v.PurposeError = err.Reason(model.FieldPurpose)
	for i := range v.Fields {
		v.Fields[i].Error = err.Reason(v.Fields[i].Spec.Name)
	}
}

func (h *Handler) showForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, newFormView(nil))
}

func (h *Handler) submitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		view := newFormView(nil)
		view.Error = "could not read form: " + err.Error()
		h.render(w, r, http.StatusBadRequest, view)
		return
	}

	view := newFormView(r.PostForm)

	req, err := requestFromForm(r.PostForm)
	if err == nil {
		var resp dto.PredictionResponse
		resp, err = h.predict.Execute(r.Context(), req)
		if err == nil {
			view.Result = &resp
			h.render(w, r, http.StatusOK, view)
			return
		}
	}

	var invalid *model.InvalidApplicantError
	if errors.As(err, &invalid) {
		view.applyErrors(invalid)
		h.render(w, r, http.StatusUnprocessableEntity, view)
		return
	}

	h.logger.ErrorContext(r.Context(), "prediction failed",
		"request_id", middleware.RequestID(r.Context()),
		"error", err,
	)
	view.Error = predictionFailureMessage(err)
	h.render(w, r, http.StatusInternalServerError, view)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, view formView) {
	var buf strings.Builder
	if err := formTemplate.Execute(&buf, view); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render form", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String())) //nolint:errcheck
}

// requestFromForm parses every posted field, starting from the defaults so
// missing inputs keep their default value. Unparseable numbers are reported
// as an *model.InvalidApplicantError.
func requestFromForm(values url.Values) (dto.PredictRiskRequest, error) {
	req := dto.DefaultPredictRiskRequest()
	if v, ok := values[model.FieldPurpose]; ok {
		req.Purpose = strings.TrimSpace(first(v))
	}

	var fields []model.FieldError
	for _, spec := range model.Fields() {
		raw, ok := values[spec.Name]
		if !ok {
			continue
		}
		s := strings.TrimSpace(first(raw))
		if err := setField(&req, spec, s); err != nil {
			fields = append(fields, model.FieldError{Field: spec.Name, Reason: err.Error()})
		}
	}
	if len(fields) > 0 {
		return dto.PredictRiskRequest{}, &model.InvalidApplicantError{Fields: fields}
	}
	return req, nil
}

func setField(req *dto.PredictRiskRequest, spec model.FieldSpec, s string) error {
	switch spec.Name {
	case model.FeatureInstallment:
		return parseDecimal(s, &req.Installment)
	case model.FeatureRevolBal:
		return parseDecimal(s, &req.RevolBal)
	}

	if spec.Integer {
		n, err := strconv.Atoi(s)
		if err != nil {
			return errors.New("must be a whole number")
		}
		switch spec.Name {
		case model.FeatureCreditPolicy:
			req.CreditPolicy = n
		case model.FeatureFICO:
			req.FICO = n
		case model.FeatureInqLast6Mths:
			req.InqLast6Mths = n
		case model.FeatureDelinq2Yrs:
			req.Delinq2Yrs = n
		case model.FeaturePubRec:
			req.PubRec = n
		}
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("must be a number")
	}
	switch spec.Name {
	case model.FeatureIntRate:
		req.IntRate = f
	case model.FeatureLogAnnualInc:
		req.LogAnnualInc = f
	case model.FeatureDTI:
		req.DTI = f
	case model.FeatureDaysWithCrLine:
		req.DaysWithCrLine = f
	case model.FeatureRevolUtil:
		req.RevolUtil = f
	}
	return nil
}

func parseDecimal(s string, dst *decimal.Decimal) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return errors.New("must be a number")
	}
	*dst = d
	return nil
}

func first(v []string) string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func predictionFailureMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrSchemaMismatch):
		return "The model's feature list does not match the applicant fields. Please contact support."
	case errors.Is(err, model.ErrWidthMismatch):
		return "The model artifacts are inconsistent. Please contact support."
	default:
		return "Prediction failed. Please try again later."
	}
}

// ---------------------------------------------------------------------------
// JSON API
// ---------------------------------------------------------------------------

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (h *Handler) createPrediction(w http.ResponseWriter, r *http.Request) {
	req := dto.DefaultPredictRiskRequest()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	resp, err := h.predict.Execute(r.Context(), req)
	if err != nil {
		var invalid *model.InvalidApplicantError
		if errors.As(err, &invalid) {
			fields := make(map[string]string, len(invalid.Fields))
			for _, f := range invalid.Fields {
				fields[f.Field] = f.Reason
			}
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: model.ErrInvalidApplicant.Error(), Fields: fields})
			return
		}
		h.logger.ErrorContext(r.Context(), "prediction failed",
			"request_id", middleware.RequestID(r.Context()),
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: predictionFailureMessage(err)})
		return
	}

	w.Header().Set("Location", "/api/v1/predictions/"+resp.ID)
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) getPrediction(w http.ResponseWriter, r *http.Request) {
	resp, err := h.get.Execute(r.Context(), dto.GetPredictionRequest{PredictionID: r.PathValue("id")})
	if err != nil {
		if errors.Is(err, model.ErrPredictionNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to get prediction", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}
