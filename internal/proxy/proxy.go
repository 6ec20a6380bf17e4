// Package proxy is the local development proxy: requests under a path prefix are
// forwarded to the chat backend with the prefix stripped.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maxviazov/chat-endpoints/internal/config"
	"github.com/maxviazov/chat-endpoints/pkg/response"
	"github.com/rs/zerolog"
)

// RequestIDHeader is attached to every forwarded request that does not carry one.
const RequestIDHeader = "X-Request-ID"

// ErrorCounter receives one call per failed upstream attempt.
type ErrorCounter interface {
	UpstreamError()
}

type Proxy struct {
	prefix       string
	target       *url.URL
	changeOrigin bool
	rp           *httputil.ReverseProxy
	client       *http.Client
	log          zerolog.Logger
	errs         ErrorCounter
}

// New builds a proxy from cfg. errs may be nil.
func New(cfg config.ProxyConfig, logger zerolog.Logger, errs ErrorCounter) (*Proxy, error) {
	prefix := strings.TrimRight(cfg.Prefix, "/")
	if !strings.HasPrefix(prefix, "/") {
		return nil, fmt.Errorf("proxy prefix must start with '/', got %q", cfg.Prefix)
	}
	target, err := url.Parse(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy target: %w", err)
	}
	if (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return nil, fmt.Errorf("invalid proxy target %q", cfg.Target)
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = timeout

	p := &Proxy{
		prefix:       prefix,
		target:       target,
		changeOrigin: cfg.ChangeOrigin,
		client:       &http.Client{Transport: transport, Timeout: timeout},
		log:          logger.With().Str("component", "proxy").Logger(),
		errs:         errs,
	}
	p.rp = &httputil.ReverseProxy{
		Rewrite:      p.rewrite,
		Transport:    transport,
		ErrorHandler: p.handleError,
	}
	return p, nil
}

// Prefix is the normalized path prefix, without a trailing slash.
func (p *Proxy) Prefix() string { return p.prefix }

// Target is the upstream base the prefix is rewritten to.
func (p *Proxy) Target() string { return p.target.String() }

// Matches reports whether path falls under the prefix on a segment boundary.
func (p *Proxy) Matches(path string) bool {
	return path == p.prefix || strings.HasPrefix(path, p.prefix+"/")
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !p.Matches(r.URL.Path) {
		response.WriteHTTPError(w, response.ErrNotProxied)
		return
	}
	p.rp.ServeHTTP(w, r)
}

func (p *Proxy) rewrite(pr *httputil.ProxyRequest) {
	pr.Out.URL.Path = p.strip(pr.Out.URL.Path)
	if pr.Out.URL.RawPath != "" {
		pr.Out.URL.RawPath = p.strip(pr.Out.URL.RawPath)
	}
	pr.SetURL(p.target)
	if !p.changeOrigin {
		pr.Out.Host = pr.In.Host
	}
	pr.SetXForwarded()

	if pr.Out.Header.Get(RequestIDHeader) == "" {
		pr.Out.Header.Set(RequestIDHeader, uuid.NewString())
	}

	p.log.Debug().
		Str("method", pr.In.Method).
		Str("from", pr.In.URL.Path).
		Str("to", pr.Out.URL.String()).
		Str("request_id", pr.Out.Header.Get(RequestIDHeader)).
		Msg("proxying request")
}

func (p *Proxy) strip(path string) string {
	rest := strings.TrimPrefix(path, p.prefix)
	if rest == "" {
		return "/"
	}
	return rest
}

func (p *Proxy) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		p.log.Debug().Str("path", r.URL.Path).Msg("client went away")
		return
	}
	if p.errs != nil {
		p.errs.UpstreamError()
	}
	p.log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Str("target", p.target.String()).Msg("upstream request failed")
	response.WriteHTTPError(w, fmt.Errorf("%w: %v", response.ErrUpstream, err))
}

// Ping checks that the target accepts connections. Any HTTP answer counts.
func (p *Proxy) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.target.String(), nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", response.ErrUpstream, err)
	}
	resp.Body.Close()
	return nil
}
