package otfgrade

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nsip/otf-grade/internal/document"
	"github.com/nsip/otf-grade/internal/grading"
	"github.com/nsip/otf-grade/internal/util"
	"github.com/pkg/errors"
)

// largest request body the service will read
const maxBodySize = "1M"

type OtfGradeService struct {
	// embedded web server to handle grading requests
	e *echo.Echo
	// the unique name of this service when running multiple instances
	serviceName string
	// the unique id of this service when running multiple instances
	serviceID string
	// the host address this service instance is running on
	serviceHost string
	// the port that this service instance is running on
	servicePort int
}

//
// create a new service instance
//
func New(options ...Option) (*OtfGradeService, error) {

	srvc := OtfGradeService{}

	if err := srvc.setOptions(options...); err != nil {
		return nil, err
	}

	srvc.e = echo.New()
	srvc.e.HideBanner = true
	srvc.e.Logger.SetLevel(log.INFO)
	// grading documents are small, refuse anything that is not
	srvc.e.Use(middleware.BodyLimit(maxBodySize))
	// add pingable method to know we're up
	srvc.e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, "OK")
	})
	// full semester grading
	srvc.e.POST("/grade", srvc.buildGradeHandler())
	// single value classification
	srvc.e.POST("/predict", srvc.buildPredictHandler())
	// the default scale, for clients that let users customise it
	srvc.e.GET("/scale", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"bands":           grading.DefaultGradeScale().Bands(),
			"canonicalGrades": canonicalGrades(),
		})
	})

	return &srvc, nil
}

type canonicalGrade struct {
	Grade  string  `json:"grade"`
	Points float64 `json:"points"`
}

// the fixed letter table, best grade first
func canonicalGrades() []canonicalGrade {
	grades := make([]canonicalGrade, 0, len(grading.CanonicalLetters))
	for _, letter := range grading.CanonicalLetters {
		points, _ := grading.GradePoints(letter)
		grades = append(grades, canonicalGrade{Grade: letter, Points: points})
	}
	return grades
}

//
// start the service running
//
func (s *OtfGradeService) Start() {

	address := fmt.Sprintf("%s:%d", s.serviceHost, s.servicePort)
	go func(addr string) {
		if err := s.e.Start(addr); err != nil && err != http.ErrServerClosed {
			s.e.Logger.Info("error starting server: ", err, ", shutting down...")
			// attempt clean shutdown by raising sig int
			p, _ := os.FindProcess(os.Getpid())
			p.Signal(os.Interrupt)
		}
	}(address)

}

//
// creates the main grading method
// requires a json grading request (see internal/document),
// responds with the semester summary plus the id of the service
// instance that produced it
//
func (s *OtfGradeService) buildGradeHandler() echo.HandlerFunc {

	sName := s.serviceName
	sID := s.serviceID

	return func(c echo.Context) error {
		defer util.TimeTrack(time.Now(), "grade request")

		body, err := readBody(c)
		if err != nil {
			return err
		}

		req, err := document.Parse(body)
		if err != nil {
			return requestError(c, err)
		}

		semester, scale, err := req.Build()
		if err != nil {
			return requestError(c, err)
		}

		summary := grading.Summarize(semester, scale)
		c.Logger().Infof("graded semester %q: %d subjects, sgpa %.2f", summary.Name, len(summary.Subjects), summary.SGPA)

		gradeResponse := map[string]interface{}{
			"summary":          summary,
			"gradeServiceID":   sID,
			"gradeServiceName": sName,
		}

		return c.JSON(http.StatusOK, gradeResponse)
	}
}

//
// classifies one relative-performance value against the default
// or a supplied grade scale
//
func (s *OtfGradeService) buildPredictHandler() echo.HandlerFunc {

	return func(c echo.Context) error {

		body, err := readBody(c)
		if err != nil {
			return err
		}

		p, err := document.ParsePrediction(body)
		if err != nil {
			return requestError(c, err)
		}
		scale, err := p.Scale()
		if err != nil {
			return requestError(c, err)
		}

		grade, points := scale.PredictGrade(p.RelativePerformance)

		return c.JSON(http.StatusOK, map[string]interface{}{
			"relativePerformance": p.RelativePerformance,
			"grade":               grade,
			"points":              points,
		})
	}
}

//
// reads the whole request body; the body limit middleware reports
// oversized bodies as its own http error, which is passed through
//
func readBody(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return nil, he
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "cannot read request body")
	}
	return body, nil
}

//
// every failure to build grading input is the caller's fault;
// validation failures and malformed documents both map to 400
//
func requestError(c echo.Context, err error) error {
	if grading.IsValidation(err) {
		c.Logger().Infof("rejected grading input: %s", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	c.Logger().Infof("malformed grading request: %s", err)
	return echo.NewHTTPError(http.StatusBadRequest, errors.Cause(err).Error())
}

//
// shut the server down gracefully
//
func (s *OtfGradeService) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.e.Shutdown(ctx); err != nil {
		fmt.Println("could not shut down server cleanly: ", err)
		s.e.Logger.Fatal(err)
	}

}

func (s *OtfGradeService) PrintConfig() {

	fmt.Println("\n\tOTF-Grade Service Configuration")
	fmt.Println("\t---------------------------------")
	fmt.Println()

	s.printID()

}

func (s *OtfGradeService) printID() {
	fmt.Println("\tservice name:\t\t", s.serviceName)
	fmt.Println("\tservice ID:\t\t", s.serviceID)
	fmt.Println("\tservice host:\t\t", s.serviceHost)
	fmt.Println("\tservice port:\t\t", s.servicePort)
}
