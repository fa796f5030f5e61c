package testkit

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math/rand"
	"time"

	"churnmate/domain/dataset"
)

// CustomerGeneratorConfig configures the sample customer data generator
type CustomerGeneratorConfig struct {
	CustomerCount int       `json:"customer_count"`
	ChurnRateBase float64   `json:"churn_rate_base"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Seed          int64     `json:"seed"`
}

// DefaultCustomerConfig returns sensible defaults for demo data generation
func DefaultCustomerConfig() CustomerGeneratorConfig {
	return CustomerGeneratorConfig{
		CustomerCount: 50,
		ChurnRateBase: 0.28,
		StartDate:     time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Seed:          42,
	}
}

// sampleColumns is the demo dataset schema
var sampleColumns = []string{"CustomerID", "Gender", "Age", "SubscriptionType", "MonthlyFee", "JoinDate", "Churn"}

var (
	genders       = []string{"Female", "Male"}
	subscriptions = []struct {
		name string
		fee  float64
	}{
		{"Basic", 9.99},
		{"Standard", 14.99},
		{"Premium", 19.99},
	}
)

// CustomerDataGenerator generates a seeded demo customer table
type CustomerDataGenerator struct {
	config CustomerGeneratorConfig
	rng    *rand.Rand
}

// NewCustomerDataGenerator creates a new generator with the given config
func NewCustomerDataGenerator(config CustomerGeneratorConfig) *CustomerDataGenerator {
	return &CustomerDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate produces the sample dataset. Same config, same table.
func (g *CustomerDataGenerator) Generate() *dataset.Dataset {
	rows := make([][]string, 0, g.config.CustomerCount)
	span := g.config.EndDate.Sub(g.config.StartDate)

	for i := 0; i < g.config.CustomerCount; i++ {
		sub := subscriptions[g.rng.Intn(len(subscriptions))]
		joined := g.config.StartDate.Add(time.Duration(g.rng.Int63n(int64(span))))

		churned := "No"
		// Cheaper plans churn a little more, mirroring the advice the
		// assistant tends to give.
		churnRate := g.config.ChurnRateBase + (19.99-sub.fee)*0.01
		if g.rng.Float64() < churnRate {
			churned = "Yes"
		}

		rows = append(rows, []string{
			fmt.Sprintf("C%04d", i+1),
			genders[g.rng.Intn(len(genders))],
			fmt.Sprintf("%d", 18+g.rng.Intn(55)),
			sub.name,
			fmt.Sprintf("%.2f", sub.fee),
			joined.Format("2006-01-02"),
			churned,
		})
	}

	ds := dataset.New(append([]string(nil), sampleColumns...), rows)
	ds.OriginalFilename = "sample_customers.csv"
	ds.Source = "sample"
	ds.MarkReady()
	return ds
}

// GenerateCSV produces the sample dataset as CSV bytes for download
func (g *CustomerDataGenerator) GenerateCSV() ([]byte, error) {
	ds := g.Generate()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ds.Columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, row := range ds.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
