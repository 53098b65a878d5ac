package otfgrade

import (
	"github.com/nsip/otf-grade/internal/util"
	"github.com/pkg/errors"
)

type Option func(*OtfGradeService) error

//
// apply all supplied options to the service
// returns any error encountered while applying the options
//
func (srvc *OtfGradeService) setOptions(options ...Option) error {
	for _, opt := range options {
		if err := opt(srvc); err != nil {
			return err
		}
	}
	return nil
}

//
// a name for this grading service instance,
// if not supplied a short hashid name will be generated
//
func Name(name string) Option {
	return func(s *OtfGradeService) error {
		if name != "" {
			s.serviceName = name
			return nil
		}
		s.serviceName = util.GenerateName()
		return nil
	}
}

//
// an id for this grading service instance,
// if not supplied a nuid will be generated
//
func ID(id string) Option {
	return func(s *OtfGradeService) error {
		if id != "" {
			s.serviceID = id
			return nil
		}
		s.serviceID = util.GenerateID()
		return nil
	}
}

//
// host name/address the service listens on,
// defaults to localhost
//
func Host(hostName string) Option {
	return func(s *OtfGradeService) error {
		if hostName != "" {
			s.serviceHost = hostName
			return nil
		}
		s.serviceHost = "localhost"
		return nil
	}
}

//
// the port to run the service on,
// 0 picks any free port
//
func Port(port int) Option {
	return func(s *OtfGradeService) error {
		if port < 0 {
			return errors.Errorf("invalid port %d", port)
		}
		if port != 0 {
			s.servicePort = port
			return nil
		}
		p, err := util.AvailablePort()
		if err != nil {
			return errors.Wrap(err, "no port specified and cannot find an available one")
		}
		s.servicePort = p
		return nil
	}
}
