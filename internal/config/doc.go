// Package config loads rendr.yaml.
//
// # Configuration File Structure
//
//	name: demo
//	serve:
//	  addr: localhost:7070
//	  allowedOrigins: ["https://example.com"]
//	  metricsPath: /metrics
//	  writeTimeout: 10s
//	snapshot:
//	  out: s3://site/index.html
//	log:
//	  level: debug
//	  format: json
//	runtime:
//	  ownerCheck: true
//
// The RENDR_ADDR environment variable overrides serve.addr.
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger := cfg.Logger(os.Stderr)
package config
