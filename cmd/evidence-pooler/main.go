package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pavlyhalim/pharma-agent-system/internal/config"
	"github.com/pavlyhalim/pharma-agent-system/internal/domain"
	"github.com/pavlyhalim/pharma-agent-system/internal/service"
)

func main() {
	var (
		inputPath = flag.String("input", "-", "path to a JSON array of raw study records, or - for stdin")
		drug      = flag.String("drug", "", "drug name attached to the analysis result")
		pretty    = flag.Bool("pretty", false, "indent the JSON output")
	)
	flag.Parse()

	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := newLogger(&cfg.Logging)

	studies, err := readStudies(*inputPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to read study records")
	}

	pooler := service.NewEvidencePooler(logger, &cfg.Analysis)
	summary := pooler.Analyze(*drug, studies)

	if err := writeSummary(os.Stdout, summary, *pretty); err != nil {
		logger.WithError(err).Fatal("Failed to write analysis result")
	}
}

// newLogger builds a logrus logger from the logging configuration.
func newLogger(cfg *domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.ToLower(cfg.Format) == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}

// readStudies decodes a JSON array of raw study records from a file or stdin.
func readStudies(path string) ([]domain.RawStudyRecord, error) {
	var reader io.Reader
	if path == "-" {
		reader = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening input file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	var studies []domain.RawStudyRecord
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&studies); err != nil {
		return nil, fmt.Errorf("decoding study records: %w", err)
	}

	return studies, nil
}

// writeSummary encodes the evidence summary as JSON.
func writeSummary(w io.Writer, summary *domain.EvidenceSummary, pretty bool) error {
	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(summary)
}
