// Package checkweb validates that a URL, possibly carrying an anchor
// fragment, points to a resource that genuinely exists on the live web.
//
// The checker consults an optional revalidation cache before touching the
// network: a verified-valid, still-fresh entry short-circuits the probe
// entirely. Plain URLs are probed with HEAD (no body needed), fragment URLs
// with GET so the body can be scanned for the anchor. When a cache is
// present, a single page fetch seeds fresh-valid entries for every anchor
// found on the page, so later checks of sibling fragments become cache hits.
//
// CheckWeb performs at most one network call per invocation, never retries,
// and returns every failure as a typed *Reason for the caller to aggregate.
package checkweb

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rafaeljc/huginn/internal/anchorscan"
	"github.com/rafaeljc/huginn/internal/logger"
	"github.com/rafaeljc/huginn/internal/observability"
	"github.com/rafaeljc/huginn/internal/probe"
)

// CheckWeb checks whether target points to a valid resource on the web.
//
// It returns nil on success or a *Reason describing the failure. The target
// must be an absolute, already-validated URL; it is only borrowed, never
// retained. Cancellation and deadlines come from ctx — the checker adds no
// timeout of its own.
func CheckWeb(ctx context.Context, target *url.URL, env Env) error {
	if env == nil {
		panic("checkweb: env cannot be nil")
	}

	timer := prometheus.NewTimer(observability.CheckDuration)
	defer timer.ObserveDuration()

	log := logger.FromContext(ctx)
	key := target.String()

	log.Debug("checking url on the web", slog.String("url", key))

	if alreadyValid(ctx, target, env) {
		log.Debug("cache says url is still valid", slog.String("url", key))
		observability.CheckerCacheHits.Inc()
		observability.ChecksTotal.WithLabelValues(outcomeOK).Inc()
		return nil
	}

	var reason *Reason
	if fragment := target.Fragment; fragment != "" {
		log.Debug("checking page contains anchor",
			slog.String("url", key),
			slog.String("fragment", fragment),
		)
		reason = checkFragment(ctx, target, fragment, env)
	} else {
		if err := probe.Head(ctx, env.Client(), target, env.ExtraHeaders(target)); err != nil {
			reason = httpReason(target, err)
		}
		// One entry for the plain key regardless of outcome, so a failed
		// probe is re-checked (never trusted) but recorded for reporting.
		writeEntry(ctx, env, key, reason == nil)
	}

	if reason == nil {
		observability.ChecksTotal.WithLabelValues(outcomeOK).Inc()
		return nil
	}

	observability.ChecksTotal.WithLabelValues(outcomeLabel(reason.Kind)).Inc()
	return reason
}

// checkFragment fetches the unfragmented page and scans it for the anchor.
//
// With a cache present the scan is exhaustive: every discovered id writes a
// fresh-valid entry keyed page#id, amortizing the single parse across all
// future fragment checks against the same page. Without a cache the scan
// stops at the first match, since nobody will reuse the sibling anchors.
func checkFragment(ctx context.Context, target *url.URL, fragment string, env Env) *Reason {
	log := logger.FromContext(ctx)

	page := *target
	page.Fragment = ""
	page.RawFragment = ""

	resp, err := probe.Get(ctx, env.Client(), &page, env.ExtraHeaders(target))
	if err != nil {
		writeEntry(ctx, env, target.String(), false)
		return httpReason(target, err)
	}
	defer resp.Body.Close()

	// The page itself resolved. The page-level key counts as satisfied
	// independent of whether this particular anchor is found.
	writeEntry(ctx, env, page.String(), true)

	cache := env.Cache()
	now := time.Now()
	found := false

	walkErr := anchorscan.WalkIDs(resp.Body, func(id string) bool {
		observability.AnchorsDiscovered.Inc()
		if id == fragment {
			found = true
			if cache == nil {
				return false
			}
		}
		if cache != nil {
			cache.Insert(ctx, fragmentKey(&page, id), Entry{CheckedAt: now, Valid: true})
		}
		return true
	})
	if walkErr != nil {
		// Unparseable bytes are a legitimate negative result, not a
		// process error: the anchor simply was not found.
		log.Debug("could not parse page body",
			slog.String("url", page.String()),
			slog.String("error", walkErr.Error()),
		)
	}

	writeEntry(ctx, env, target.String(), found)

	if !found {
		return &Reason{Kind: KindDOM, URL: target.String(), Fragment: fragment}
	}
	return nil
}

// alreadyValid consults the cache for the exact key, fragment included.
func alreadyValid(ctx context.Context, target *url.URL, env Env) bool {
	cache := env.Cache()
	if cache == nil {
		return false
	}
	entry, ok := cache.Lookup(ctx, target.String())
	if ok && entry.Fresh(env.CacheTimeout(), time.Now()) {
		return true
	}
	observability.CheckerCacheMisses.Inc()
	return false
}

// writeEntry stamps a fresh entry for key, if a cache is present.
func writeEntry(ctx context.Context, env Env, key string, valid bool) {
	cache := env.Cache()
	if cache == nil {
		return
	}
	cache.Insert(ctx, key, Entry{CheckedAt: time.Now(), Valid: valid})
}

// fragmentKey synthesizes the cache key for one anchor of a page.
func fragmentKey(page *url.URL, id string) string {
	u := *page
	u.Fragment = id
	u.RawFragment = ""
	return u.String()
}

// httpReason wraps a probe failure into the HTTP side of the taxonomy.
// Transport errors and bad status codes are deliberately the same kind:
// the caller does not distinguish them further.
func httpReason(target *url.URL, err error) *Reason {
	r := &Reason{Kind: KindHTTP, URL: target.String(), Err: err}
	var statusErr *probe.StatusError
	if errors.As(err, &statusErr) {
		r.StatusCode = statusErr.Code
	}
	return r
}

// Metric outcome labels.
const (
	outcomeOK            = "ok"
	outcomeHTTPError     = "http_error"
	outcomeAnchorMissing = "anchor_missing"
)

func outcomeLabel(k Kind) string {
	if k == KindDOM {
		return outcomeAnchorMissing
	}
	return outcomeHTTPError
}
