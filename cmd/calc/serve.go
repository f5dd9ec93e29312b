package main

import (
	"errors"
	"expvar"
	"fmt"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/expvarhandler"

	calc "github.com/somecho/cli-calculator"
)

// Counters served on /stats.
var (
	evalCalls = expvar.NewInt("evalCalls")

	evalOKResponses    = expvar.NewInt("evalOKResponses")
	evalInputErrors    = expvar.NewInt("evalInputErrors")
	evalUndefinedNames = expvar.NewInt("evalUndefinedNames")
)

// handler routes requests. Each evaluation runs in its own clone of the
// session context, so definitions in a request never outlive it and the
// session context is only ever read.
func (s *session) handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		switch string(ctx.Path()) {
		case "/eval":
			s.handleEval(ctx)
		case "/stats":
			expvarhandler.ExpvarHandler(ctx)
		default:
			ctx.Error("not found", fasthttp.StatusNotFound)
		}
	}
}

// handleEval evaluates the expr query argument, or the request body of a
// POST.
func (s *session) handleEval(ctx *fasthttp.RequestCtx) {
	evalCalls.Add(1)
	var src string
	switch {
	case ctx.IsPost():
		src = string(ctx.PostBody())
	case ctx.IsGet():
		src = string(ctx.QueryArgs().Peek("expr"))
	default:
		ctx.Error("method not allowed", fasthttp.StatusMethodNotAllowed)
		return
	}

	a, err := calc.ParseString(src, s.scan...)
	if err != nil {
		evalInputErrors.Add(1)
		ctx.Error(err.Error(), fasthttp.StatusBadRequest)
		return
	}
	r, err := s.ctx.Clone().Eval(a)
	if err != nil {
		var ne *calc.NameError
		if !errors.As(err, &ne) {
			ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
			return
		}
		evalUndefinedNames.Add(1)
		ctx.Error(err.Error(), fasthttp.StatusUnprocessableEntity)
		return
	}
	evalOKResponses.Add(1)
	ctx.SetContentType("text/plain; charset=utf-8")
	fmt.Fprintf(ctx, s.verb, r)
}

func serve(addr string, s *session) {
	log.Printf("Starting HTTP server on %q", addr)
	server := &fasthttp.Server{
		Handler:      s.handler(),
		Name:         "calc",
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
	}
	if err := server.ListenAndServe(addr); err != nil {
		log.Fatalf("error in ListenAndServe: %v", err)
	}
}
