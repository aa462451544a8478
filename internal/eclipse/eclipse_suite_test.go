package eclipse_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEclipse(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Eclipse Suite")
}
