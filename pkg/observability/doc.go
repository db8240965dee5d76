/*
Package observability turns converter hooks into Prometheus metrics.

Metrics binds counters for promotions, generated paths and failures to
domain.Hooks, so any surface that runs a conversion (CLI, HTTP, MCP) can
expose them through promhttp.
*/
package observability
