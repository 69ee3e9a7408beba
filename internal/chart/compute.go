package chart

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"meridian/internal/astro/aspect"
	"meridian/internal/astro/horizon"
	"meridian/internal/astro/lots"
	"meridian/internal/astro/meridianline"
	"meridian/internal/astro/paran"
	"meridian/internal/astro/stars"
	"meridian/internal/astro/transform"
	"meridian/internal/cache"
	"meridian/internal/domain"
	"meridian/internal/ephemeris"
	"meridian/internal/humandesign"
)

// collectionNamespace seeds deterministic collection IDs: the same request
// always serializes to the same bytes, cached or recomputed.
var collectionNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("meridian.charts"))

// paranBodies is the body set parans are evaluated over. Lunar points are
// excluded; their angular lines are not classical paran sources.
var paranBodies = []domain.BodyID{
	domain.BodySun, domain.BodyMoon, domain.BodyMercury, domain.BodyVenus,
	domain.BodyMars, domain.BodyJupiter, domain.BodySaturn, domain.BodyUranus,
	domain.BodyNeptune, domain.BodyPluto, domain.BodyChiron,
}

// bodyResult carries everything solved for one body during fan-out.
type bodyResult struct {
	body domain.Body
	ra   float64
	dec  float64

	curve domain.HorizonCurve
	mcLon float64
	icLon float64

	mcAspects []aspect.MCLine
	acAspects []aspect.ACLine
}

// ComputeFeatures runs the full pipeline for a request and returns the
// assembled collection. Per-body ephemeris failures are recovered into the
// collection's errors list; only invalid input or a failed Human Design
// solve aborts the request.
func (s *Service) ComputeFeatures(ctx context.Context, req domain.ChartRequest) (*domain.FeatureCollection, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	opts := req.Options
	target := req.Instant
	var hdMeta *domain.HumanDesignMeta

	if req.Layer == domain.LayerHDDesign {
		res, err := humandesign.NewSolver(s.provider).Solve(ctx, req.Instant)
		if err != nil {
			return nil, err
		}
		s.metrics.ObserveHDIterations(res.Iterations)
		if !res.Converged {
			s.logger.Warn("design converger hit iteration cap",
				"precision_deg", res.PrecisionDeg, "iterations", res.Iterations)
		}
		hdMeta = humandesign.Meta(res)
		target = res.DesignUTC
		// The design pass draws body lines only.
		opts.IncludeFixedStars = false
	}

	instant := domain.NewInstant(target)
	provider := ephemeris.Memoize(s.provider)

	bodies := domain.DefaultBodies
	if opts.ExtendedBodies {
		bodies = domain.ExtendedBodies
	}

	results := make(map[domain.BodyID]*bodyResult, len(bodies))
	var bodyErrors []domain.BodyError
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, id := range bodies {
		g.Go(func() error {
			pos, err := provider.Position(gctx, id, instant.UTC)
			if err != nil {
				s.metrics.IncrementBodyFailure()
				s.logger.Warn("body skipped", "body", id, "error", err)
				mu.Lock()
				bodyErrors = append(bodyErrors, domain.BodyError{
					Body:  domain.DisplayName(id),
					Error: err.Error(),
				})
				mu.Unlock()
				return nil
			}
			res := s.solveBody(domain.NewBody(id, pos), instant, opts)
			mu.Lock()
			results[id] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var starList []stars.Star
	if opts.IncludeFixedStars {
		for _, name := range s.starNames {
			st, err := stars.Lookup(name)
			if err != nil {
				s.logger.Warn("fixed star skipped", "star", name, "error", err)
				bodyErrors = append(bodyErrors, domain.BodyError{Body: name, Error: err.Error()})
				continue
			}
			starList = append(starList, st)
		}
	}

	// Fan-out finishes in arbitrary order; fix the error order for
	// deterministic serialization.
	sort.Slice(bodyErrors, func(i, j int) bool { return bodyErrors[i].Body < bodyErrors[j].Body })

	var events []domain.ParanEvent
	if opts.IncludeParans {
		events = s.paranEvents(results, instant)
	}

	var lotList []lots.Lot
	if opts.IncludeHermeticLots {
		lotList = s.hermeticLots(results, instant, req)
	}

	fc := s.assemble(req.Layer, opts, bodies, results, events, lotList, starList, instant)
	fc.BodyErrors = bodyErrors
	fc.HumanDesign = hdMeta

	key := cache.Key(req.Layer, req.Instant, req.Lat, req.Lon, req.Options)
	fc.ID = uuid.NewSHA1(collectionNamespace, []byte(key)).String()

	s.metrics.IncrementChartsComputed(string(req.Layer))
	s.metrics.ObserveComputeDuration(time.Since(start))
	s.logger.Debug("chart computed",
		"layer", req.Layer,
		"features", len(fc.Features),
		"body_errors", len(bodyErrors),
		"duration", time.Since(start))
	return fc, nil
}

// solveBody computes everything derivable from one body's position. MC/IC
// longitudes are solved unconditionally since the paran join needs them even
// when meridian features are filtered out.
func (s *Service) solveBody(body domain.Body, instant domain.Instant, opts domain.ChartOptions) *bodyResult {
	ra, dec := transform.EclipticToEquatorial(
		body.Position.Longitude, body.Position.Latitude, transform.ObliquityDeg)

	res := &bodyResult{body: body, ra: ra, dec: dec}
	res.mcLon = meridianline.MCLongitude(ra, instant.GMSTDeg)
	res.icLon = meridianline.ICLongitude(ra, instant.GMSTDeg)

	if opts.IncludeACDC {
		res.curve = s.horizon.Curve(body, instant)
	}
	if opts.IncludeAspects && body.Category == domain.CategoryPlanet {
		res.mcAspects = s.aspects.MCLines(body, instant, aspect.DefaultAngles)
		res.acAspects = s.aspects.ACLines(body, instant, aspect.DefaultAngles)
	}
	return res
}

// paranEvents joins paran body pairs: each body's AC and DC branches are
// crossed against every other body's MC and IC meridians, and against the
// other body's AC and DC branches. Meridian pairings run in both directions;
// horizon-horizon pairings are symmetric, so each unordered pair is crossed
// once. Iterating bodies in canonical order keeps event order stable.
func (s *Service) paranEvents(results map[domain.BodyID]*bodyResult, instant domain.Instant) []domain.ParanEvent {
	var events []domain.ParanEvent
	for i, aID := range paranBodies {
		a := results[aID]
		if a == nil {
			continue
		}
		aLines := []paran.Line{
			paran.NamedLine(a.body.Name+"_AC", horizon.RisingLine(a.ra, a.dec, instant.GMSTDeg)),
			paran.NamedLine(a.body.Name+"_DC", horizon.SettingLine(a.ra, a.dec, instant.GMSTDeg)),
		}
		for j, bID := range paranBodies {
			if j == i {
				continue
			}
			b := results[bID]
			if b == nil {
				continue
			}
			bMeridians := []paran.Line{
				paran.ConstantLine(b.body.Name+"_MC", b.mcLon),
				paran.ConstantLine(b.body.Name+"_IC", b.icLon),
			}
			for _, la := range aLines {
				for _, lb := range bMeridians {
					events = append(events, s.parans.Crossings(la, lb)...)
				}
			}
			if j > i {
				bHorizon := []paran.Line{
					paran.NamedLine(b.body.Name+"_AC", horizon.RisingLine(b.ra, b.dec, instant.GMSTDeg)),
					paran.NamedLine(b.body.Name+"_DC", horizon.SettingLine(b.ra, b.dec, instant.GMSTDeg)),
				}
				for _, la := range aLines {
					for _, lb := range bHorizon {
						events = append(events, s.parans.Crossings(la, lb)...)
					}
				}
			}
		}
	}
	return events
}

// hermeticLots derives the lot set from the solved body longitudes and the
// ascendant at the request's birthplace.
func (s *Service) hermeticLots(results map[domain.BodyID]*bodyResult, instant domain.Instant, req domain.ChartRequest) []lots.Lot {
	longitudes := make(map[domain.BodyID]float64, len(results))
	for id, r := range results {
		longitudes[id] = r.body.Position.Longitude
	}
	lst := transform.NormalizeDeg(instant.GMSTDeg + req.Lon)
	asc := transform.AscendantLongitude(lst, req.Lat, transform.ObliquityDeg)
	return lots.Calculate(longitudes, asc)
}
