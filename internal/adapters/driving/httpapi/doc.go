// Package httpapi exposes the lexai driving ports as a JSON HTTP API built
// on gin.
//
// Routes:
//
//	GET  /health
//	POST /api/search
//	GET  /api/quota
//	POST /api/upgrade
//	POST /api/downgrade
//
// Failures use the envelope {"success": false, "error": {"code", "message"}}
// with codes from the domain error taxonomy.
package httpapi
