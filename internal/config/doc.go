// Package config provides configuration parsing for Wayfind projects.
//
// The configuration is stored in wayfind.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "my-site",
//	  "pages": {
//	    "dir": "pages"
//	  },
//	  "router": {
//	    "caseInsensitive": false
//	  },
//	  "inspect": {
//	    "host": "localhost",
//	    "port": 7410
//	  },
//	  "publish": {
//	    "bucket": "edge-routes",
//	    "region": "eu-west-1",
//	    "key": "wayfind/routes.json"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Pages root:", cfg.PagesPath())
package config
