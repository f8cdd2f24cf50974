package handler

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"takehome-engine/internal/engine"
	"takehome-engine/internal/metrics"
	"takehome-engine/internal/model"
	"takehome-engine/internal/payslip"
	"takehome-engine/internal/taxyear"
	"takehome-engine/internal/validation"
)

//go:embed static/index.html.tmpl
var indexSource string

var indexTemplate = template.Must(template.New("index").Parse(indexSource))

type indexPage struct {
	TaxYear string
	Plans   []string
}

// Handler serves the calculator over fasthttp.
type Handler struct {
	calc    *engine.Calculator
	metrics *metrics.Collector
	index   []byte
	now     func() time.Time
}

func New(calc *engine.Calculator, m *metrics.Collector) *Handler {
	return &Handler{calc: calc, metrics: m, index: renderIndex(calc.Constants()), now: time.Now}
}

// renderIndex builds the form page once; its student loan options come from
// the loaded table.
func renderIndex(c *taxyear.Constants) []byte {
	page := indexPage{
		TaxYear: c.Name,
		Plans:   append([]string{string(model.StudentLoanNone)}, c.PlanNames()...),
	}
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		slog.Error("render index page failed", "err", err)
	}
	return buf.Bytes()
}

// Handle routes a request. Calculation failures are always reported as
// HTTP 200 with success false; only routing errors use other status codes.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/calculate":
		if !requireMethod(ctx, fasthttp.MethodPost) {
			return
		}
		h.guard(ctx, h.handleCalculate)
	case "/payslip":
		if !requireMethod(ctx, fasthttp.MethodPost) {
			return
		}
		h.guard(ctx, h.handlePayslip)
	case "/":
		if !requireMethod(ctx, fasthttp.MethodGet, fasthttp.MethodHead) {
			return
		}
		ctx.SetContentType("text/html; charset=utf-8")
		ctx.SetBody(h.index)
	case "/healthz":
		if !requireMethod(ctx, fasthttp.MethodGet, fasthttp.MethodHead) {
			return
		}
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("ok")
	case "/metrics":
		if !requireMethod(ctx, fasthttp.MethodGet) {
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, h.metrics.Snapshot())
	default:
		writeJSON(ctx, fasthttp.StatusNotFound, model.Envelope{Error: "not found"})
	}
}

func (h *Handler) handleCalculate(ctx *fasthttp.RequestCtx) {
	in, ok := h.parse(ctx)
	if !ok {
		return
	}

	result := h.calc.Calculate(in)
	h.metrics.CalculationSucceeded()
	writeJSON(ctx, fasthttp.StatusOK, model.Envelope{Success: true, Result: &result})
}

func (h *Handler) handlePayslip(ctx *fasthttp.RequestCtx) {
	in, ok := h.parse(ctx)
	if !ok {
		return
	}

	result := h.calc.Calculate(in)
	h.metrics.CalculationSucceeded()

	pdf, err := payslip.Render(payslip.Details{
		Reference: uuid.NewString(),
		TaxYear:   h.calc.Constants().Name,
		Issued:    h.now(),
		Input:     in,
	}, result)
	if err != nil {
		slog.Error("payslip render failed", "requestId", RequestID(ctx), "err", err)
		writeJSON(ctx, fasthttp.StatusOK, model.Envelope{Error: err.Error()})
		return
	}

	h.metrics.PayslipRendered()
	ctx.SetContentType("application/pdf")
	ctx.Response.Header.Set("Content-Disposition", `inline; filename="payslip.pdf"`)
	ctx.SetBody(pdf)
}

// parse validates the request body, answering the request itself when the
// body is unusable.
func (h *Handler) parse(ctx *fasthttp.RequestCtx) (model.CalculationInput, bool) {
	in, issues := validation.ParseRequest(ctx.PostBody())
	if len(issues) > 0 {
		h.metrics.CalculationRejected()
		slog.Debug("calculation rejected", "requestId", RequestID(ctx), "issues", len(issues))
		writeJSON(ctx, fasthttp.StatusOK, model.Envelope{Error: model.JoinIssues(issues)})
		return model.CalculationInput{}, false
	}
	return in, true
}

// guard turns a panic inside a calculation route into the regular failure
// envelope.
func (h *Handler) guard(ctx *fasthttp.RequestCtx, next fasthttp.RequestHandler) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("calculation panicked", "requestId", RequestID(ctx), "panic", rec)
			ctx.Response.ResetBody()
			writeJSON(ctx, fasthttp.StatusOK, model.Envelope{Error: fmt.Sprint(rec)})
		}
	}()
	next(ctx)
}

func requireMethod(ctx *fasthttp.RequestCtx, methods ...string) bool {
	method := string(ctx.Method())
	for _, m := range methods {
		if method == m {
			return true
		}
	}
	ctx.Response.Header.Set("Allow", strings.Join(methods, ", "))
	writeJSON(ctx, fasthttp.StatusMethodNotAllowed, model.Envelope{Error: "method not allowed"})
	return false
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, payload any) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if err := json.NewEncoder(ctx).Encode(payload); err != nil {
		slog.Warn("write json failed", "requestId", RequestID(ctx), "err", err)
	}
}
