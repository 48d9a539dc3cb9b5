package scoring

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Scaler", func() {
	Describe("Transform", func() {
		It("is the identity when the scaler is nil", func() {
			var s *Scaler
			v := Vector{42.5, 4, 0, 20000, 2}
			Expect(s.Transform(v)).To(Equal(v))
			Expect(s.Fitted()).To(BeFalse())
		})

		It("is the identity when parameters were never loaded", func() {
			s := &Scaler{}
			v := Vector{1, 2, 3, 4, 5}
			Expect(s.Transform(v)).To(Equal(v))
			Expect(s.Fitted()).To(BeFalse())
		})

		It("applies (value - mean) / scale per feature", func() {
			s := &Scaler{
				Mean:  []float64{10, 20, 30, 40, 50},
				Scale: []float64{2, 4, 5, 10, 25},
			}
			Expect(s.Transform(Vector{12, 28, 30, 20, 100})).To(Equal(Vector{1, 2, 0, -2, 2}))
		})

		It("is invertible", func() {
			s := &Scaler{
				Mean:  []float64{35.2, 3.1, 0.4, 18000, 2.2},
				Scale: []float64{12.5, 1.7, 0.9, 4200, 1.1},
			}
			in := Vector{42.5, 4, 0, 20000, 2}
			out := s.Transform(in)
			for i := range out {
				Expect(out[i]*s.Scale[i]+s.Mean[i]).To(BeNumerically("~", in[i], 1e-9))
			}
		})
	})

	Describe("LoadScaler", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "credlens-scaler-*")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			os.RemoveAll(dir)
		})

		write := func(content string) string {
			path := filepath.Join(dir, "scaler.json")
			Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
			return path
		}

		It("loads a valid artifact", func() {
			path := write(`{"mean":[1,2,3,4,5],"scale":[1,1,1,1,1]}`)
			s, err := LoadScaler(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Fitted()).To(BeTrue())
			Expect(s.Transform(Vector{1, 2, 3, 4, 5})).To(Equal(Vector{}))
		})

		It("fails when the parameter count is wrong", func() {
			path := write(`{"mean":[1,2],"scale":[1,1]}`)
			_, err := LoadScaler(path)
			Expect(err).To(HaveOccurred())
		})

		It("fails on a zero scale", func() {
			path := write(`{"mean":[1,2,3,4,5],"scale":[1,0,1,1,1]}`)
			_, err := LoadScaler(path)
			Expect(err).To(HaveOccurred())
		})

		It("fails on a missing artifact", func() {
			_, err := LoadScaler(filepath.Join(dir, "absent.json"))
			Expect(err).To(HaveOccurred())
		})
	})
})
