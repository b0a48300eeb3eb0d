package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/coder/websocket"

	"github.com/go-fractals/fractalmake/internal/fractal"
)

// Canvas size served to the browser; the render grid matches it.
const (
	imgWidth  = 896
	imgHeight = 512
)

type viewRequest struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	HalfWidth float64 `json:"halfWidth"`
	Iters     uint32  `json:"iters,omitempty"`
}

type server struct {
	opts  *fractal.Options
	fn    fractal.Fn
	scale *fractal.ColorScale
}

func main() {
	addr := flag.String("addr", "localhost:8000", "HTTP listen address")
	cfgPath := flag.String("config", "mandelbrot.cfg", "option file supplying the formula and colors")
	flag.Parse()
	fractal.Debug = os.Getenv("DEBUG") != ""

	f, err := os.Open(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	opts, err := fractal.LoadOptions(f)
	f.Close()
	if err != nil {
		log.Fatal(err)
	}
	fn, err := fractal.ParseFormula(opts.Formula)
	if err != nil {
		log.Fatal(err)
	}
	scale, err := fractal.NewColorScale(opts.Colors)
	if err != nil {
		log.Fatal(err)
	}
	srv := &server{opts: opts, fn: fn, scale: scale}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.servePage)
	mux.HandleFunc("/ws", srv.serveWS)

	log.Printf("listening on http://%s", *addr)
	hs := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(hs.ListenAndServe())
}

func (s *server) servePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

// serveWS answers view requests on one websocket connection: each JSON
// request gets one binary PNG frame back.
func (s *server) serveWS(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Println(err)
		return
	}
	defer c.CloseNow()

	ctx := r.Context()
	for {
		_, data, err := c.Read(ctx)
		if err != nil {
			return
		}
		var req viewRequest
		if err := json.Unmarshal(data, &req); err != nil {
			log.Printf("bad view request: %v", err)
			continue
		}
		frame, err := s.render(req)
		if err != nil {
			log.Printf("render: %v", err)
			continue
		}
		if err := c.Write(ctx, websocket.MessageBinary, frame); err != nil {
			return
		}
	}
}

func (s *server) render(req viewRequest) ([]byte, error) {
	iters := req.Iters
	if iters == 0 {
		iters = s.opts.MaxIters
	}
	halfW := req.HalfWidth
	if halfW <= 0 {
		halfW = 1.6
	}
	halfH := halfW * imgHeight / imgWidth

	dom := fractal.Domain{
		LowerLeft:  complex(req.X-halfW, req.Y-halfH),
		UpperRight: complex(req.X+halfW, req.Y+halfH),
		Columns:    imgWidth,
		Rows:       imgHeight,
	}
	test := fractal.NewTester(s.fn, s.opts.Constant, s.opts.Escape, iters, s.opts.Probe)

	start := time.Now()
	frac, err := fractal.MakeFractal(dom, fractal.Checker(test), s.opts.Threads)
	if err != nil {
		return nil, err
	}
	fractal.DebugLog("View (%g, %g) hw=%g rendered in %s", req.X, req.Y, halfW, time.Since(start))

	var buf bytes.Buffer
	err = fractal.WriteImage(&buf, frac, func(it uint32) fractal.Color {
		if it == 0 {
			return fractal.Color{}
		}
		return s.scale.Color(it)
	}, "png")
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
