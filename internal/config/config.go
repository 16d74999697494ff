package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host      string    `koanf:"host"`
	Frontend  Frontend  `koanf:"frontend"`
	Database  Database  `koanf:"db"`
	Scheduler Scheduler `koanf:"scheduler"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

// Scheduler holds the time-window and gap parameters used by the itinerary
// formatter and the hotel auto-scheduler.
type Scheduler struct {
	// DayStartHour and DayEndHour bound the daily placement window.
	DayStartHour int `koanf:"daystarthour"`
	DayEndHour   int `koanf:"dayendhour"`
	// HotelStartHour is the hour of day at which hotel events are placed.
	HotelStartHour int `koanf:"hotelstarthour"`
	// MinGapMinutes and MaxGapMinutes bound the randomized gap between
	// consecutive calendar events.
	MinGapMinutes int `koanf:"mingapminutes"`
	MaxGapMinutes int `koanf:"maxgapminutes"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Frontend: Frontend{
			Enabled: true,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "wonderplan",
			Pass:   "",
			Name:   "wonderplan",
			Schema: "wonderplan",
		},
		Scheduler: Scheduler{
			DayStartHour:   10,
			DayEndHour:     23,
			HotelStartHour: 8,
			MinGapMinutes:  30,
			MaxGapMinutes:  180,
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "WONDERPLAN_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "WONDERPLAN_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
