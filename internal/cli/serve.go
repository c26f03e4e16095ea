package cli

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsvg/pkg/errors"
	"github.com/matzehuels/qrsvg/pkg/observability"
	"github.com/matzehuels/qrsvg/pkg/pipeline"
	"github.com/matzehuels/qrsvg/pkg/render/qr/styles"
)

const (
	defaultAddr    = ":8080"
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 64 << 10
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered QR codes over HTTP",
		Long: `Serve starts an HTTP server that renders QR codes on request.

  GET  /qr.{svg,png,pdf,json}?text=...&style=rounded&ratio=0.9
  POST /qr            JSON body with the same fields; "formats" picks the output
  GET  /styles        registered shape families
  GET  /healthz       liveness check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.config.Serve.Addr != "" {
				addr = c.config.Serve.Addr
			}
			if !cmd.Flags().Changed("timeout") && c.config.Serve.Timeout.Duration > 0 {
				timeout = c.config.Serve.Timeout.Duration
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			if c.Logger.GetLevel() <= log.DebugLevel {
				observability.SetServerHooks(observability.LogHooks{Logger: c.Logger.WithPrefix("http")})
			}

			s := &server{runner: runner, logger: c.Logger, timeout: timeout, defaults: c.config.Render}
			return s.listen(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", defaultTimeout, "per-request render timeout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

// server renders QR codes for HTTP clients. All state lives in the runner,
// which is safe for concurrent use.
type server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	timeout  time.Duration
	defaults RenderConfig
}

func (s *server) listen(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.ErrCodeInternal, err, "listen on %s", addr)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	r.Get("/styles", s.handleStyles)
	r.Get("/qr.{format}", s.handleGet)
	r.Post("/qr", s.handlePost)
	return r
}

// requestID tags each request with an ID (taken from X-Request-ID when the
// client sends one), hands handlers a logger carrying it and reports the
// request to the server hooks.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := withLogger(r.Context(), s.logger.With("request_id", id))
		hooks := observability.Server()
		hooks.OnRequest(ctx, id, r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(ctx, id, r.Method, route, status, time.Since(start))
	})
}

type styleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Neighbors   bool   `json:"neighbors"`
	Random      bool   `json:"random"`
}

func (s *server) handleStyles(w http.ResponseWriter, r *http.Request) {
	out := make([]styleInfo, len(styles.All))
	for i, f := range styles.All {
		out[i] = styleInfo{Name: f.Name, Description: f.Description, Neighbors: f.Neighbors, Random: f.Random}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	opts, err := s.queryOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{chi.URLParam(r, "format")}
	s.render(w, r, opts)
}

func (s *server) handlePost(w http.ResponseWriter, r *http.Request) {
	opts := s.baseOptions()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if len(opts.Formats) > 1 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "one format per request, got %d", len(opts.Formats)))
		return
	}
	s.render(w, r, opts)
}

func (s *server) render(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}
	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	opts.Logger = loggerFromContext(ctx)
	result, err := s.runner.Execute(ctx, opts)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = errors.Wrap(errors.ErrCodeTimeout, err, "render timed out")
		}
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Grid-Hash", result.GridHash)
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// baseOptions returns the configured render defaults.
func (s *server) baseOptions() pipeline.Options {
	var opts pipeline.Options
	d := s.defaults
	opts.Style, opts.SizeRatio, opts.Level = d.Style, d.Ratio, d.Level
	opts.BoxSize = d.Box
	if d.Border != nil {
		b := *d.Border
		opts.Border = &b
	}
	opts.FrontColor, opts.FillColor, opts.Background = d.Front, d.Fill, d.Background
	opts.EyeColor, opts.EyeCenterColor, opts.EyeStyle = d.EyeColor, d.EyeCenterColor, d.EyeStyle
	opts.PathMode, opts.PixelUnits = d.Path, d.PixelUnits
	opts.Scale, opts.Workers = d.Scale, d.Workers
	return opts
}

// queryOptions maps query parameters onto the configured defaults.
func (s *server) queryOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.baseOptions()
	q := r.URL.Query()

	strs := map[string]*string{
		"text":       &opts.Text,
		"style":      &opts.Style,
		"ratio":      &opts.SizeRatio,
		"level":      &opts.Level,
		"front":      &opts.FrontColor,
		"fill":       &opts.FillColor,
		"background": &opts.Background,
		"eye":        &opts.EyeColor,
		"eye_center": &opts.EyeCenterColor,
		"eye_style":  &opts.EyeStyle,
	}
	for name, dst := range strs {
		if v := q.Get(name); v != "" {
			*dst = v
		}
	}

	if v := q.Get("box"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "box: %q is not an integer", v)
		}
		opts.BoxSize = n
	}
	if v := q.Get("border"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "border: %q is not an integer", v)
		}
		opts.Border = &n
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "seed: %q is not an unsigned integer", v)
		}
		opts.Seed = &n
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale: %q is not a number", v)
		}
		opts.Scale = f
	}
	bools := map[string]*bool{
		"path": &opts.PathMode,
		"px":   &opts.PixelUnits,
	}
	for name, dst := range bools {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a boolean", name, v)
			}
			*dst = b
		}
	}
	return opts, nil
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= 500 {
		loggerFromContext(r.Context()).Error("request failed", "err", err)
	}
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
