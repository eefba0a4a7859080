// Package config loads vitrine's runtime configuration.
//
// Settings are layered, later layers winning:
//
//  1. defaults (New)
//  2. vitrine.json in the working directory (optional)
//  3. .env.local and .env files, which never override real environment
//     variables
//  4. environment variables: BASE_URL, VITRINE_HOST, VITRINE_PORT,
//     VITRINE_ENV, VITRINE_LOG_LEVEL, VITRINE_LOG_FORMAT
//  5. command-line flags (Overrides)
//
// # Configuration File Structure
//
//	{
//	  "name": "vitrine",
//	  "baseURL": "/loja/",
//	  "env": "production",
//	  "server": {
//	    "host": "0.0.0.0",
//	    "port": 8080,
//	    "readTimeout": "15s",
//	    "shutdownTimeout": "10s"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "json"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Resolve(".", config.Overrides{Port: 9000})
//	if err != nil {
//	    return err
//	}
//	fmt.Println("Listening on", cfg.Address())
package config
