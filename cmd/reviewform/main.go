//go:build js && wasm

// Command reviewform is the browser build of the review form handler.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ppiankov/reviewlens/internal/logging"
	"github.com/ppiankov/reviewlens/internal/model"
	"github.com/ppiankov/reviewlens/internal/page"
	"github.com/ppiankov/reviewlens/internal/predict"
	"github.com/ppiankov/reviewlens/internal/submit"
	"github.com/ppiankov/reviewlens/internal/webdom"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "reviewform: %v\n", err)
		os.Exit(1)
	}
	select {}
}

func run() error {
	log, err := logging.New(model.LogConfig{Level: "info", Format: "console"})
	if err != nil {
		return err
	}

	formEl, err := webdom.ByID(page.FormID)
	if err != nil {
		return err
	}
	inputEl, err := webdom.ByID(page.InputID)
	if err != nil {
		return err
	}
	resultEl, err := webdom.ByID(page.ResultID)
	if err != nil {
		return err
	}

	client := predict.NewClient(webdom.Origin())

	submit.Attach(context.Background(),
		webdom.NewForm(formEl),
		webdom.NewInput(inputEl),
		webdom.NewOutput(resultEl),
		client,
		log,
	)

	log.Info("review form attached", zap.String("endpoint", webdom.Origin()+predict.Path))
	return nil
}
