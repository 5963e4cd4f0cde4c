package reaxff

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestReaxFF(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ReaxFF Suite")
}
