package notify

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"go.uber.org/zap"

	"github.com/yourneighborhoodchef/stocksms/internal/client"
	"github.com/yourneighborhoodchef/stocksms/internal/config"
	"github.com/yourneighborhoodchef/stocksms/internal/domain"
	"github.com/yourneighborhoodchef/stocksms/internal/headers"
)

// maxBodyRunes is the longest message the SMS API accepts.
const maxBodyRunes = 1600

// SMSNotifier delivers notifications through the Twilio Messages API.
type SMSNotifier struct {
	client    client.Doer
	baseURL   string
	creds     config.Credentials
	userAgent string
	logger    *zap.Logger
}

func NewSMSNotifier(c client.Doer, baseURL string, creds config.Credentials, userAgent string, logger *zap.Logger) *SMSNotifier {
	return &SMSNotifier{
		client:    c,
		baseURL:   strings.TrimRight(baseURL, "/"),
		creds:     creds,
		userAgent: userAgent,
		logger:    logger,
	}
}

func (s *SMSNotifier) endpoint() string {
	return fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, url.PathEscape(s.creds.AccountSID))
}

// Send posts one message. Any 2xx response counts as delivered; the response
// body is not inspected. Every failure wraps domain.ErrDelivery.
func (s *SMSNotifier) Send(ctx context.Context, n domain.Notification) error {
	form := url.Values{}
	form.Set("Body", truncate(n.Body, maxBodyRunes))
	form.Set("From", s.creds.From)
	form.Set("To", s.creds.To)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", domain.ErrDelivery, err)
	}
	req.Header = headers.BuildFormHeaders(s.userAgent)
	req.SetBasicAuth(s.creds.AccountSID, s.creds.AuthToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: send request: %v", domain.ErrDelivery, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %d", domain.ErrDelivery, resp.StatusCode)
	}

	s.logger.Info("notification delivered",
		zap.String("kind", string(n.Kind)),
		zap.Bool("fatal", n.Fatal),
	)
	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
