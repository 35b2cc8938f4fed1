package webhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain/event"
)

// SignatureHeader carries the hex HMAC-SHA256 of the body when a secret is set.
const SignatureHeader = "X-Market-Signature"

type Config struct {
	Url      string        `mapstructure:"url"`
	Secret   string        `mapstructure:"secret"`
	RetryMax int           `mapstructure:"retryMax"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type notifier struct {
	url    string
	secret []byte
	client *retryablehttp.Client
}

func New(cfg Config) event.Notifier {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = cfg.RetryMax
	if client.RetryMax == 0 {
		client.RetryMax = 3
	}
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	if cfg.Timeout > 0 {
		client.HTTPClient.Timeout = cfg.Timeout
	}
	return &notifier{
		url:    cfg.Url,
		secret: []byte(cfg.Secret),
		client: client,
	}
}

func (n *notifier) Notify(c ctx.Ctx, e *event.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "id": e.Id}).Error("json.Marshal failed")
		return err
	}
	req, err := retryablehttp.NewRequestWithContext(c, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "url": n.url}).Error("retryablehttp.NewRequest failed")
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if len(n.secret) > 0 {
		mac := hmac.New(sha256.New, n.secret)
		mac.Write(body)
		req.Header.Set(SignatureHeader, hex.EncodeToString(mac.Sum(nil)))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "url": n.url, "id": e.Id}).Error("client.Do failed")
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		err := fmt.Errorf("webhook responded %d", resp.StatusCode)
		c.WithFields(log.Fields{"err": err, "url": n.url, "id": e.Id}).Error("webhook rejected event")
		return err
	}
	return nil
}
