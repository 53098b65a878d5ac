package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/nsip/otf-grade/internal/document"
	"github.com/nsip/otf-grade/internal/grading"
	"github.com/nsip/otf-grade/internal/report"
	"github.com/nsip/otf-grade/internal/util"
	"github.com/peterbourgon/ff/v3"
	"github.com/pkg/errors"
)

func main() {

	_ = godotenv.Load()

	fs := flag.NewFlagSet("otf-grade-report", flag.ExitOnError)
	var (
		_         = fs.String("config", "", "config file (optional), json format.")
		inFile    = fs.String("in", "-", "grading request document to read, - for stdin")
		outFile   = fs.String("out", "", "write the json summary export to this file")
		remote    = fs.String("remote", "", "host:port of a running otf-grade service; grade locally if blank")
		showScale = fs.Bool("scale", false, "print the grade scale before the report")
		noColor   = fs.Bool("nocolor", false, "disable coloured output")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.JSONParser),
		ff.WithEnvVarPrefix("OTF_GRADE_REPORT"),
	); err != nil {
		fail(err)
	}

	data, err := readInput(*inFile)
	if err != nil {
		fail(err)
	}

	req, err := document.Parse(data)
	if err != nil {
		fail(err)
	}

	var summary grading.SemesterSummary
	if *remote != "" {
		summary, err = gradeRemote(*remote, data)
	} else {
		summary, err = gradeLocal(req)
	}
	if err != nil {
		fail(err)
	}

	var ropts []report.Option
	if *noColor {
		ropts = append(ropts, report.NoColor())
	}

	if *showScale {
		gs, err := req.Scale()
		if err != nil {
			fail(err)
		}
		fmt.Println("\nGrade scale:")
		if err := report.WriteScale(os.Stdout, gs, ropts...); err != nil {
			fail(err)
		}
	}

	if err := report.Write(os.Stdout, summary, ropts...); err != nil {
		fail(err)
	}

	if *outFile != "" {
		if err := exportTo(*outFile, summary); err != nil {
			fail(err)
		}
		fmt.Printf("\nSummary saved to %s\n", *outFile)
	}
}

func readInput(name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(name)
	return data, errors.Wrapf(err, "cannot read %s", name)
}

func gradeLocal(req *document.Request) (grading.SemesterSummary, error) {
	sem, gs, err := req.Build()
	if err != nil {
		return grading.SemesterSummary{}, err
	}
	return grading.Summarize(sem, gs), nil
}

//
// posts the document to a running grading service and returns
// the summary it produced
//
func gradeRemote(addr string, data []byte) (grading.SemesterSummary, error) {

	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	url := fmt.Sprintf("http://%s/grade", addr)

	res, err := util.Fetch("POST", url, headers, bytes.NewReader(data))
	if err != nil {
		if len(res) > 0 {
			return grading.SemesterSummary{}, errors.Wrap(err, string(bytes.TrimSpace(res)))
		}
		return grading.SemesterSummary{}, errors.Wrap(err, "remote grading failed")
	}

	var resp struct {
		Summary grading.SemesterSummary `json:"summary"`
	}
	if err := json.Unmarshal(res, &resp); err != nil {
		return grading.SemesterSummary{}, errors.Wrap(err, "cannot decode remote summary")
	}
	return resp.Summary, nil
}

func exportTo(name string, summary grading.SemesterSummary) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "cannot create export file")
	}
	if err := report.Export(f, summary); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "\notf-grade-report: %s\n\n", err)
	os.Exit(1)
}
