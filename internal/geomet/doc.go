// Package geomet is a client for the MSC GeoMet OGC API - Features service
// at https://api.weather.gc.ca.
//
// # API Shape
//
// Every dataset is a collection (e.g. climate-hourly, hydrometric-daily-mean)
// exposed under /collections/{id}/items. Items are GeoJSON Features carrying
// a Point geometry (station location) and a flat property bag. Responses are
// FeatureCollections with numberMatched/numberReturned counts and a links
// array; a link with rel "next" signals more pages exist.
//
// # Filtering
//
// The items endpoint accepts, as query parameters:
//
//	bbox        west,south,east,north in WGS84 degrees
//	datetime    an instant ("2023-01-15"), a closed range ("2023-01-01/2023-01-31"),
//	            or a half-open range ("../2023-01-31", "2023-01-01/..")
//	sortby      property name, "-" prefix for descending
//	properties  comma-separated projection of returned fields
//	limit       page size, server-capped at 500
//	offset      skip count (offset pagination; no opaque cursors)
//	<name>      any queryable property as an equality filter, e.g.
//	            STATION_NUMBER=02HA003
//
// The service is public and unauthenticated, best effort, and can take
// several seconds on large collections, so the per-request timeout is an
// explicit configuration value. Failures are surfaced to the caller as-is:
// no retries, no response caching.
package geomet
