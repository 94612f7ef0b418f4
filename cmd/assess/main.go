// Command assess submits a single attrition questionnaire to the model
// service from the terminal and renders the interpreted result.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"attrition-risk-eval/backend/internal/form"
	"attrition-risk-eval/backend/internal/predict"
	"attrition-risk-eval/backend/internal/scoring"
	"attrition-risk-eval/backend/internal/session"
)

func main() {
	_ = godotenv.Load()

	endpoint := flag.String("endpoint", "", "Model service base URL (env MODEL_SERVICE_URL, default http://localhost:5001)")
	timeout := flag.Duration("timeout", 0, "Request timeout (default 10s)")
	showFields := flag.Bool("fields", false, "Print the questionnaire schema and exit")

	answers := make(map[string]*string, len(form.Fields()))
	for _, f := range form.Fields() {
		name := flagName(f.Key)
		usage := f.Description
		if len(f.Options) > 0 {
			usage = fmt.Sprintf("%s (one of: %s)", usage, strings.Join(f.Options, ", "))
		} else if f.Numeric() {
			usage = fmt.Sprintf("%s (%.0f-%.0f)", usage, f.Min, f.Max)
		}
		answers[f.Key] = flag.String(name, "", usage)
	}
	flag.Parse()

	if *showFields {
		printSchema()
		return
	}

	baseURL := strings.TrimSpace(*endpoint)
	if baseURL == "" {
		baseURL = strings.TrimSpace(os.Getenv("MODEL_SERVICE_URL"))
	}
	if baseURL == "" {
		baseURL = "http://localhost:5001"
	}

	client, err := predict.NewClient(predict.Config{BaseURL: baseURL, Timeout: *timeout})
	if err != nil {
		logrus.Fatalf("create client: %v", err)
	}

	sess := session.New(client)
	for key, value := range answers {
		if strings.TrimSpace(*value) == "" {
			continue
		}
		if err := sess.SetField(key, *value); err != nil {
			logrus.Fatalf("set field: %v", err)
		}
	}

	completion := sess.Completion()
	fmt.Printf("Form completion: %d/%d (%.0f%%)\n", completion.Filled, completion.Total, completion.Ratio*100)
	if !sess.CanSubmit() {
		fmt.Println("\nMissing answers:")
		for _, f := range form.Fields() {
			if strings.TrimSpace(*answers[f.Key]) == "" {
				fmt.Printf("  -%s\t%s\n", flagName(f.Key), f.Label)
			}
		}
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	outcome, err := sess.Submit(ctx)
	if err != nil {
		var attempt *predict.AttemptError
		if errors.As(err, &attempt) {
			fmt.Fprintf(os.Stderr, "\nPrediction failed: %s\n", attempt.Message)
			os.Exit(1)
		}
		logrus.Fatalf("submit: %v", err)
	}

	printReport(outcome)
}

func flagName(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}

func printSchema() {
	for _, f := range form.Fields() {
		fmt.Printf("-%s\t%s [%s]\n", flagName(f.Key), f.Label, f.Kind)
		if len(f.Options) > 0 {
			fmt.Printf("\toptions: %s\n", strings.Join(f.Options, ", "))
		}
		if f.Numeric() {
			fmt.Printf("\trange: %.0f-%.0f\n", f.Min, f.Max)
		}
	}
}

func printReport(outcome *session.Outcome) {
	interp := outcome.Interpretation

	fmt.Printf("\n%s %s\n", toneGlyph(interp.Tier.Tone), interp.Tier.Label)
	fmt.Printf("Model verdict: %s\n\n", outcome.Result.PredictionLabel)

	fmt.Printf("Leave      %s %3d%%\n", gauge(float64(interp.LeavePercent)), interp.LeavePercent)
	fmt.Printf("Stay       %s %3d%%\n", gauge(float64(interp.StayPercent)), interp.StayPercent)
	fmt.Printf("Confidence %s %3d%%\n", gauge(float64(interp.ConfidencePercent)), interp.ConfidencePercent)

	if len(interp.Importances) > 0 {
		fmt.Println("\nFeature importance:")
		for _, imp := range interp.Importances {
			fmt.Printf("  %-20s %s %.2f\n", imp.Name, gauge(imp.BarPercent), imp.Weight)
		}
	}
}

func toneGlyph(tone scoring.Tone) string {
	switch tone {
	case scoring.ToneDanger:
		return "[!!]"
	case scoring.ToneWarning:
		return "[! ]"
	default:
		return "[ok]"
	}
}

const gaugeWidth = 30

func gauge(percent float64) string {
	filled := int(math.Round(percent / 100 * gaugeWidth))
	if filled < 0 {
		filled = 0
	}
	if filled > gaugeWidth {
		filled = gaugeWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", gaugeWidth-filled)
}
