package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/bruin-data/docsite/pkg/build"
	"github.com/bruin-data/docsite/pkg/path"
	"github.com/bruin-data/docsite/pkg/route"
	"github.com/bruin-data/docsite/pkg/sidebar"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type ErrorResponses struct {
	Error []string `json:"error"`
}

type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func RecoverFromPanic() {
	if err := recover(); err != nil {
		log.Println("=======================================")
		log.Println("docsite encountered an unexpected error, please report the issue.")
		log.Println(err)
		log.Println("=======================================")
		b := bufio.NewScanner(bytes.NewBuffer(debug.Stack()))
		for b.Scan() {
			log.Println(b.Text())
		}
		os.Exit(1)
	}
}

func makeLogger(isDebug bool) *zap.SugaredLogger {
	if !isDebug {
		return zap.NewNop().Sugar()
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}

	return logger.Sugar()
}

func isJSONOutput(output string) bool {
	return strings.ToLower(strings.TrimSpace(output)) == "json"
}

// silenceForJSON discards the pretty-printed output so that only the JSON document reaches stdout.
func silenceForJSON(output string) {
	if isJSONOutput(output) {
		color.Output = io.Discard
	}
}

func marshal[K ErrorResponse | ErrorResponses](m K) ([]byte, error) {
	js, marshalError := json.Marshal(m)
	if marshalError != nil {
		fmt.Println(marshalError)
		return []byte{}, marshalError
	}
	return js, nil
}

func printErrorJSON(err error) {
	errResponse := ErrorResponse{
		Error: errors.New("something went wrong").Error(),
	}
	if err != nil {
		errResponse.Error = err.Error()
	}
	js, err := marshal[ErrorResponse](errResponse)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(js))
}

func printErrorsJSON(errs []string) {
	js, err := marshal[ErrorResponses](ErrorResponses{Error: errs})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(js))
}

func printError(err error, output string, message string) {
	if isJSONOutput(output) {
		printErrorJSON(err)
	} else {
		errorPrinter.Printf("%s: %v\n", message, err)
	}
}

// printBuildError lists every problem of a failed build, one per line, instead of a single
// concatenated error message.
func printBuildError(err error, output string) {
	lines := buildErrorLines(err)
	if isJSONOutput(output) {
		printErrorsJSON(lines)
		return
	}

	errorPrinter.Println("\nThe build failed:")
	for i, line := range lines {
		connector := "├──"
		if i == len(lines)-1 {
			connector = "└──"
		}
		errorPrinter.Printf("  %s %s\n", connector, line)
	}
}

func buildErrorLines(err error) []string {
	var cfgErr *sidebar.ConfigurationError
	if errors.As(err, &cfgErr) {
		lines := make([]string, 0, len(cfgErr.Problems))
		for _, p := range cfgErr.Problems {
			lines = append(lines, p.String())
		}
		return lines
	}

	var dupErr *route.DuplicateRouteError
	if errors.As(err, &dupErr) {
		lines := make([]string, 0, len(dupErr.Duplicates))
		for _, d := range dupErr.Duplicates {
			lines = append(lines, fmt.Sprintf("the route '%s' is produced by %s", d.Path, strings.Join(d.Owners, " and ")))
		}
		return lines
	}

	return unwrapAllErrors(err)
}

func printSuccessForOutput(output string, message string) {
	if isJSONOutput(output) {
		successResponse := SuccessResponse{
			Status:  "success",
			Message: message,
		}
		jsonData, err := json.Marshal(successResponse)
		if err != nil {
			fmt.Println("Error:", err.Error())
			return
		}
		fmt.Println(string(jsonData))
	} else {
		successPrinter.Printf("%s\n", message)
	}
}

func printJSON(v any) error {
	js, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal the output")
	}

	fmt.Println(string(js))
	return nil
}

// projectRoot resolves the directory holding the site definition, starting from the given argument
// and walking up.
func projectRoot(arg string) (string, error) {
	if arg == "" {
		arg = "."
	}

	return path.FindProjectRoot(fs, arg, SiteDefinitionFiles)
}

func loadBuildContext(ctx context.Context, arg string, opts build.Options, logger *zap.SugaredLogger) (*build.Context, error) {
	root, err := projectRoot(arg)
	if err != nil {
		return nil, err
	}
	logger.Debugf("using project root '%s'", root)

	return build.Load(ctx, fs, root, opts, logger)
}

func unwrapAllErrors(err error) []string {
	if err == nil {
		return []string{}
	}

	errorItems := flattenErrors(err)
	count := len(errorItems)
	if count < 2 {
		return errorItems
	}

	cleanErrors := make([]string, count)
	cleanErrors[count-1] = errorItems[0]
	for i := range errorItems {
		if i == count-1 {
			break
		}

		rev := count - i - 1
		item := errorItems[rev]

		cleanMessage := strings.ReplaceAll(item, ": "+errorItems[rev-1], "")
		cleanErrors[i] = cleanMessage
	}

	return cleanErrors
}

func flattenErrors(err error) []string {
	if err == nil {
		return []string{}
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped == nil {
		return []string{err.Error()}
	}

	for unwrapped != nil && err.Error() == unwrapped.Error() {
		unwrapped = errors.Unwrap(unwrapped)
	}

	var foundErrors []string
	allErrors := flattenErrors(unwrapped)
	foundErrors = append(foundErrors, allErrors...)
	foundErrors = append(foundErrors, err.Error())

	return foundErrors
}
