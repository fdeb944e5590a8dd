package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	http "github.com/bogdanfinn/fhttp"
	"go.uber.org/zap"

	"github.com/yourneighborhoodchef/stocksms/internal/domain"
	"github.com/yourneighborhoodchef/stocksms/internal/headers"
	"github.com/yourneighborhoodchef/stocksms/internal/logging"
)

const (
	// defaultBodyCapacity is used when the response declares no length.
	defaultBodyCapacity = 8192
	// maxBodyCapacity caps the pre-allocation, not the body.
	maxBodyCapacity = 1 << 20
)

// Checker polls one product endpoint and compares the payload against a
// fixed out-of-stock baseline.
type Checker struct {
	client    Doer
	url       string
	userAgent string
	baseline  domain.Product
	logger    *zap.Logger
}

func NewChecker(client Doer, url, userAgent string, baseline domain.Product, logger *zap.Logger) *Checker {
	return &Checker{
		client:    client,
		url:       url,
		userAgent: userAgent,
		baseline:  baseline,
		logger:    logger,
	}
}

// Check performs exactly one GET against the product endpoint. A nil result
// means the payload still matches the baseline; anything else is a
// notification for the operator.
func (c *Checker) Check(ctx context.Context) *domain.Notification {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.Transient(domain.KindTransport, fmt.Sprintf("Could not build product request: %v", err))
	}
	req.Header = headers.BuildHeaders(c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Transient(domain.KindTransport, fmt.Sprintf("Product request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		sample, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("unexpected status code",
			zap.Int("status", resp.StatusCode),
			zap.String("body_sample", logging.Sample(sample)),
		)

		msg := fmt.Sprintf("Product page returned HTTP %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return domain.Transient(domain.KindClientStatus, msg)
		}
		return domain.Fatal(domain.KindServerStatus, msg)
	}

	capacity, err := bodyCapacity(resp.Header)
	if err != nil {
		return domain.Fatal(domain.KindMalformedMetadata, fmt.Sprintf("Could not parse product response metadata: %v", err))
	}

	buf := bytes.NewBuffer(make([]byte, 0, capacity))
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return domain.Transient(domain.KindBodyRead, fmt.Sprintf("Reading product response failed: %v", err))
	}

	product, err := domain.DecodeProduct(buf.Bytes())
	if err != nil {
		c.logger.Warn("product payload did not decode",
			zap.Error(err),
			zap.String("body_sample", logging.Sample(buf.Bytes())),
		)
		return domain.Fatal(domain.KindSchemaMismatch, fmt.Sprintf("Product response changed shape: %v", err))
	}

	if product == c.baseline {
		return nil
	}

	if product.MayBeInStock() {
		return domain.Fatal(domain.KindStockSignal, fmt.Sprintf("Product may be in stock! %s %s", product, c.url))
	}
	return domain.Fatal(domain.KindBaselineStale,
		fmt.Sprintf("Product page changed but shows no stock. Update the baseline to %s", product))
}

// bodyCapacity turns the declared Content-Length into a read buffer size.
// The value is only a hint: bodies of any length are still read in full.
func bodyCapacity(h http.Header) (int, error) {
	v := h.Get("Content-Length")
	if v == "" {
		return defaultBodyCapacity, nil
	}

	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("content-length %q: %w", v, err)
	}
	if n > maxBodyCapacity {
		return maxBodyCapacity, nil
	}
	return int(n), nil
}
