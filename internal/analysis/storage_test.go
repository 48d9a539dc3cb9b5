package analysis

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalStorage", func() {
	var (
		tempDir string
		storage *LocalStorage
		err     error
	)

	BeforeEach(func() {
		tempDir, err = os.MkdirTemp("", "credlens-storage-*")
		Expect(err).NotTo(HaveOccurred())

		storage, err = NewLocalStorage(filepath.Join(tempDir, "documents"))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	It("creates the storage directory", func() {
		Expect(filepath.Join(tempDir, "documents")).To(BeADirectory())
	})

	It("round-trips a document", func() {
		path, err := storage.Save("req-1_report.pdf", []byte("pdf-bytes"))
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal("req-1_report.pdf"))

		data, err := storage.Get(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal([]byte("pdf-bytes")))
	})

	It("deletes a document", func() {
		path, err := storage.Save("req-1_report.pdf", []byte("pdf-bytes"))
		Expect(err).NotTo(HaveOccurred())
		Expect(storage.Delete(path)).To(Succeed())

		_, err = storage.Get(path)
		Expect(err).To(HaveOccurred())
	})

	It("fails to get a missing document", func() {
		_, err := storage.Get("missing.pdf")
		Expect(err).To(HaveOccurred())
	})

	It("fails to delete a missing document", func() {
		Expect(storage.Delete("missing.pdf")).NotTo(Succeed())
	})
})
