package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	otfgrade "github.com/nsip/otf-grade"
	"github.com/peterbourgon/ff/v3"
)

func main() {

	// a .env file is optional, its values feed the env var lookup below
	_ = godotenv.Load()

	fs := flag.NewFlagSet("otf-grade", flag.ExitOnError)
	var (
		_           = fs.String("config", "", "config file (optional), json format.")
		serviceName = fs.String("name", "", "name for this grading service instance")
		serviceID   = fs.String("id", "", "id for this grading service instance, leave blank to auto-generate a unique id")
		serviceHost = fs.String("host", "localhost", "name/address of host for this service")
		servicePort = fs.Int("port", 0, "port to run service on, if not specified will assign an available port automatically")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.JSONParser),
		ff.WithEnvVarPrefix("OTF_GRADE_SRVC"),
	); err != nil {
		fmt.Printf("\nCannot read otf-grade configuration:\n%s\n\n", err)
		os.Exit(1)
	}

	opts := []otfgrade.Option{
		otfgrade.Name(*serviceName),
		otfgrade.ID(*serviceID),
		otfgrade.Host(*serviceHost),
		otfgrade.Port(*servicePort),
	}

	srvc, err := otfgrade.New(opts...)
	if err != nil {
		fmt.Printf("\nCannot create otf-grade service:\n%s\n\n", err)
		os.Exit(1)
	}

	srvc.PrintConfig()

	// signal handler for shutdown
	closed := make(chan struct{})
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\notf-grade shutting down")
		srvc.Shutdown()
		fmt.Println("otf-grade closed")
		close(closed)
	}()

	srvc.Start()

	// block until shutdown by sig-handler
	<-closed

}
