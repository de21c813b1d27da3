// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > YAML config >
// Environment variables > Defaults. The YAML file also carries the product
// catalog the calculator settings store is seeded with.
//
// X-Forwarded-For is only trusted for rate limiting when TRUST_PROXY_HEADERS,
// rate_limit.trust_proxy_headers or --trust-proxy-headers enables it.
package config
