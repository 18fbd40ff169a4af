package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config lend config
type Config struct {
	App      App       `json:"app"`
	DB       db.Config `json:"db"`
	Oracle   Oracle    `json:"oracle"`
	Treasury Treasury  `json:"treasury"`
	Admins   []string  `json:"admins"`
}

// App app config
type App struct {
	Port     int    `json:"port"`
	Location string `json:"location"`
	Genesis  int64  `json:"genesis"`
}

// Oracle price oracle config
type Oracle struct {
	EndPoint string `json:"end_point"`
	// max price age accepted, in ms
	FreshnessMs int64 `json:"freshness_ms"`
}

// Treasury treasury collaborator config
type Treasury struct {
	EndPoint string `json:"end_point"`
}
