package ddns

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasttemplate"

	"github.com/campusnet/autoconnect/src/internal/config"
	"github.com/campusnet/autoconnect/src/internal/errors"
	"github.com/campusnet/autoconnect/src/internal/log"
	"github.com/campusnet/autoconnect/src/internal/status"
)

const (
	ProviderPubyun  = "pubyun"
	ProviderDynDNS2 = "dyndns2"

	TmplDomain = "domain"
	TmplIP     = "ip"

	// PubyunUpdateURL is the pubyun (3322.net) dyndns2 endpoint. The provider takes the address from the request source.
	PubyunUpdateURL = "http://members.3322.net/dyndns/update?system=dyndns&hostname={{domain}}"

	userAgent       = "autoconnect"
	maxResponseSize = 4 << 10
)

// successMarkers are the dyndns2 return codes that mean the record holds the submitted address.
var successMarkers = []string{"good", "nochg"}

// Updater submits addresses to the configured DDNS provider.
type Updater struct {
	cfg    *config.DDNSConfig
	client *http.Client
	now    func() time.Time
}

func NewUpdater(cfg *config.DDNSConfig, client *http.Client) *Updater {
	if client == nil {
		timeout := cfg.Timeout()
		if timeout <= 0 {
			timeout = config.DefaultDDNSTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Updater{
		cfg:    cfg,
		client: client,
		now:    time.Now,
	}
}

// UpdateURL renders the update request URL for the configured provider.
func UpdateURL(cfg *config.DDNSConfig, ip netip.Addr) (string, error) {
	var template string
	switch cfg.Provider {
	case ProviderPubyun:
		template = PubyunUpdateURL
	case ProviderDynDNS2:
		template = cfg.Server
	default:
		return "", errors.NewUnsupportedProviderError(cfg.Provider)
	}

	t, err := fasttemplate.NewTemplate(template, "{{", "}}")
	if err != nil {
		return "", errors.NewConfigError(fmt.Sprintf("invalid update URL template %q", template), err)
	}
	return t.ExecuteString(map[string]interface{}{
		TmplDomain: url.QueryEscape(cfg.Domain),
		TmplIP:     url.QueryEscape(ip.String()),
	}), nil
}

// Update submits ip to the provider and records the attempt in st,
// whatever the outcome. A rejected or failed submission is a DdnsError.
func (u *Updater) Update(ctx context.Context, ip netip.Addr, st *status.Status) error {
	updateURL, err := UpdateURL(u.cfg, ip)
	if err != nil {
		return err
	}

	log.Infof("Updating DDNS record %s to %s via %s", u.cfg.Domain, ip, u.cfg.Provider)

	body, err := u.request(ctx, updateURL)
	if err != nil {
		st.RecordDDNS(ip.String(), false, u.now())
		return errors.NewDDNSError("DDNS not updated", err)
	}

	log.Detailf("%s", strings.ReplaceAll(strings.TrimSpace(body), "\n", " @@"))

	if err := InterpretResponse(body); err != nil {
		st.RecordDDNS(ip.String(), false, u.now())
		return errors.NewDDNSError("DDNS not updated", err)
	}

	st.RecordDDNS(ip.String(), true, u.now())
	log.Infof("DDNS record %s updated to %s", u.cfg.Domain, ip)
	return nil
}

func (u *Updater) request(ctx context.Context, updateURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, updateURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(u.cfg.Username, u.cfg.Password)
	req.Header.Set("User-Agent", userAgent)

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	log.Debugf("DDNS provider answered with HTTP %d", resp.StatusCode)

	return string(content), nil
}

// InterpretResponse decides whether the provider accepted an update from the response body.
func InterpretResponse(body string) error {
	for _, marker := range successMarkers {
		if strings.Contains(body, marker) {
			return nil
		}
	}
	code := strings.TrimSpace(body)
	if i := strings.IndexAny(code, " \n"); i >= 0 {
		code = code[:i]
	}
	if code == "" {
		code = "empty response"
	}
	return fmt.Errorf("provider rejected the update: %s", code)
}
