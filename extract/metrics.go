package extract

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("name-extractor.extract")
	meter  = otel.Meter("name-extractor.extract")
)

var (
	extractLatency metric.Float64Histogram
	filesTotal     metric.Int64Counter
	namesTotal     metric.Int64Counter
	tokensTotal    metric.Int64Counter
	anomaliesTotal metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics 初始化指标，可重复调用
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		extractLatency, err = meter.Float64Histogram(
			"extract_file_duration_seconds",
			metric.WithDescription("Duration of name tokenisation and result assembly per file"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		filesTotal, err = meter.Int64Counter(
			"extract_files_total",
			metric.WithDescription("Total number of files assembled"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		namesTotal, err = meter.Int64Counter(
			"extract_names_total",
			metric.WithDescription("Total number of identifier names tokenised"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		tokensTotal, err = meter.Int64Counter(
			"extract_tokens_total",
			metric.WithDescription("Total number of sub-word tokens produced"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		anomaliesTotal, err = meter.Int64Counter(
			"extract_tokenisation_anomalies_total",
			metric.WithDescription("Names for which the tokeniser returned no tokens"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func startExtractSpan(ctx context.Context, path, strategy string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Extractor.Extract",
		trace.WithAttributes(
			attribute.String("extract.path", path),
			attribute.String("extract.strategy", strategy),
		),
	)
}

func recordExtractMetrics(ctx context.Context, duration time.Duration, strategy string, names, tokens, anomalies int) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("strategy", strategy))
	extractLatency.Record(ctx, duration.Seconds(), attrs)
	filesTotal.Add(ctx, 1, attrs)
	namesTotal.Add(ctx, int64(names), attrs)
	tokensTotal.Add(ctx, int64(tokens), attrs)
	if anomalies > 0 {
		anomaliesTotal.Add(ctx, int64(anomalies), attrs)
	}
}
