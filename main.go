package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/mpesa-sms-parser/internal/api"
	"github.com/insightdelivered/mpesa-sms-parser/internal/batch"
	"github.com/insightdelivered/mpesa-sms-parser/internal/config"
	"github.com/insightdelivered/mpesa-sms-parser/internal/ingest"
	"github.com/insightdelivered/mpesa-sms-parser/internal/logger"
	"github.com/insightdelivered/mpesa-sms-parser/internal/models"
	"github.com/insightdelivered/mpesa-sms-parser/internal/parser"
	"github.com/insightdelivered/mpesa-sms-parser/internal/writer"
)

const version = "1.0.0"

var cli struct {
	Parse   parseCmd         `cmd:"" help:"Parse one message, or start an interactive prompt when no message is given."`
	Batch   batchCmd         `cmd:"" help:"Parse every message line of a .txt file or .pdf SMS export."`
	Serve   serveCmd         `cmd:"" help:"Run the HTTP API server."`
	Version kong.VersionFlag `help:"Print version and exit."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("mpesa-sms-parser"),
		kong.Description("Converts M-PESA notification text into structured transaction records."),
		kong.Vars{"version": version},
	)
	ctx.FatalIfErrorf(ctx.Run())
}

type parseCmd struct {
	Message []string `arg:"" optional:"" help:"Message text to parse. Quote the whole message."`
}

func (p *parseCmd) Run() error {
	mp := parser.New()

	if len(p.Message) > 0 {
		return parseAndPrint(mp, strings.Join(p.Message, " "))
	}

	// Interactive mode mirrors the classic prompt loop: keep reading
	// messages until the operator types exit.
	fmt.Println("M-PESA message parser. Paste a message and press enter (type 'exit' to quit).")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "exit") {
			fmt.Println("Bye.")
			break
		}
		if line == "" {
			continue
		}
		if err := parseAndPrint(mp, line); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return scanner.Err()
}

func parseAndPrint(mp *parser.MessageParser, text string) error {
	rec, err := mp.Parse(text)
	if err != nil {
		return err
	}
	printRecord(rec)
	return nil
}

func printRecord(rec *models.TransactionRecord) {
	fmt.Printf("kind:            %s\n", rec.Kind)
	fmt.Printf("status:          %s\n", rec.Status)
	if rec.TransactionID != "" {
		fmt.Printf("transaction id:  %s\n", rec.TransactionID)
	}
	printMoney("amount", rec.Amount)
	if rec.Counterparty != "" {
		fmt.Printf("counterparty:    %s\n", rec.Counterparty)
	}
	if rec.CounterpartyID != "" {
		fmt.Printf("counterparty id: %s\n", rec.CounterpartyID)
	}
	printMoney("balance", rec.Balance)
	printMoney("cost", rec.Cost)
	if rec.HasTimestamp() {
		fmt.Printf("timestamp:       %s\n", rec.Timestamp.Format("2006-01-02 15:04"))
	}
	if rec.FailureReason != "" {
		fmt.Printf("failure reason:  %s\n", rec.FailureReason)
	}
	printMoney("fuliza interest", rec.FulizaInterest)
	printMoney("fuliza owed", rec.FulizaOutstanding)
	printMoney("fuliza limit", rec.FulizaLimit)
	if rec.FulizaDueDate != nil {
		fmt.Printf("fuliza due date: %s\n", rec.FulizaDueDate.Format("2006-01-02"))
	}
	printMoney("m-shwari balance", rec.MShwariBalance)
	printMoney("daily limit", rec.DailyLimit)
}

func printMoney(label string, v *float64) {
	if v == nil {
		return
	}
	fmt.Printf("%-16s %.2f\n", label+":", *v)
}

type batchCmd struct {
	Input  string `arg:"" help:"Path to a .txt file (one message per line) or a .pdf SMS export."`
	CSV    string `help:"Write results to this CSV file." type:"path"`
	JSON   string `help:"Write the full report to this JSON file." type:"path"`
	Header bool   `default:"true" negatable:"" help:"Include run metadata rows in CSV output."`
}

func (b *batchCmd) Run() error {
	log := logger.New()

	messages, err := ingest.ReadMessages(b.Input)
	if err != nil {
		return err
	}
	fmt.Printf("Processing: %s (%d message(s))\n", b.Input, len(messages))

	report := batch.NewRunner(log).Run(b.Input, messages)
	fmt.Printf("  Parsed: %d  Failed: %d  Run: %s\n", report.Parsed, report.Failed, report.RunID)

	if b.CSV != "" {
		w := &writer.CSVWriter{IncludeHeader: b.Header}
		if err := w.WriteToFile(b.CSV, report); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
		fmt.Printf("  CSV output: %s\n", b.CSV)
	}
	if b.JSON != "" {
		if err := writer.NewJSONFile(b.JSON).Write(report); err != nil {
			return fmt.Errorf("JSON write failed: %w", err)
		}
		fmt.Printf("  JSON output: %s\n", b.JSON)
	}
	if b.CSV == "" && b.JSON == "" {
		for _, res := range report.Results {
			fmt.Printf("\n--- line %d ---\n", res.Line)
			if res.Record != nil {
				printRecord(res.Record)
			} else {
				fmt.Printf("error: %s\n", res.Error)
			}
		}
	}

	fmt.Println("Done.")
	return nil
}

type serveCmd struct {
	Config string `help:"Path to a YAML config file." type:"path"`
}

func (s *serveCmd) Run() error {
	log := logger.New()

	cfg := config.Defaults()
	if s.Config != "" {
		loaded, err := config.Load(s.Config)
		if err != nil {
			return fmt.Errorf("config load failed: %w", err)
		}
		cfg = loaded
	}

	app := fiber.New(fiber.Config{
		AppName:      "mpesa-sms-parser v" + version,
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	h := api.NewHandler(batch.NewRunner(log))
	h.RegisterRoutes(app)

	log.Info().Str("addr", cfg.Addr).Msg("starting HTTP API")
	return app.Listen(cfg.Addr)
}
