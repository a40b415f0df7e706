package store

import (
	"errors"
	"io/ioutil"
	"os"
	"path"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"hurracloud.io/docsearch/internal/indexer"
)

var _ = Describe("Store", func() {
	var (
		dir string
		s   *Store
	)

	BeforeEach(func() {
		var err error
		dir, err = ioutil.TempDir("", "docsearch-store")
		Expect(err).NotTo(HaveOccurred())
		s = &Store{MetadataDir: dir}
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	settings := func(name string) *indexer.IndexSettings {
		return &indexer.IndexSettings{
			ContentDir:      "/srv/site",
			IndexIdentifier: name,
			Parallelism:     4,
			ExcludePatterns: []string{"node_modules"},
		}
	}

	It("reports unknown indices", func() {
		_, err := s.GetBatchIndexer("site")
		Expect(err).To(Equal(ErrIndexDoesNotExist))
		_, err = s.GetFileIndexer("site")
		Expect(err).To(Equal(ErrIndexDoesNotExist))
	})

	It("persists settings for new indexers", func() {
		_, err := s.NewBatchIndexer(settings("site"))
		Expect(err).NotTo(HaveOccurred())

		fresh := &Store{MetadataDir: dir}
		i, err := fresh.GetBatchIndexer("site")
		Expect(err).NotTo(HaveOccurred())
		Expect(i.IndexSettings).To(Equal(settings("site")))
		Expect(i.MetadataDir).To(Equal(dir))

		f, err := fresh.GetFileIndexer("site")
		Expect(err).NotTo(HaveOccurred())
		Expect(f.IndexSettings.ContentDir).To(Equal("/srv/site"))

		Expect(fresh.Indices()).To(ConsistOf("site"))
	})

	It("marks deleted indices as stale until they are recreated", func() {
		_, err := s.NewBatchIndexer(settings("site"))
		Expect(err).NotTo(HaveOccurred())
		Expect(s.IsStaleIndex("site")).To(BeFalse())

		Expect(s.DeleteIndexer("site")).To(Succeed())
		Expect(s.IsStaleIndex("site")).To(BeTrue())
		_, err = s.GetBatchIndexer("site")
		Expect(err).To(Equal(ErrIndexDoesNotExist))

		_, err = s.NewBatchIndexer(settings("site"))
		Expect(err).NotTo(HaveOccurred())
		Expect(s.IsStaleIndex("site")).To(BeFalse())
	})

	It("refuses identifiers that escape the metadata dir", func() {
		_, err := s.NewBatchIndexer(settings("site"))
		Expect(err).NotTo(HaveOccurred())
		queueFile := path.Join(dir, "batch.queue")
		Expect(ioutil.WriteFile(queueFile, []byte("jobs"), 0644)).To(Succeed())

		for _, name := range []string{"", ".", "..", "a/../..", "a/b", `a\b`} {
			_, err := s.NewBatchIndexer(settings(name))
			Expect(errors.Is(err, ErrInvalidIndexIdentifier)).To(BeTrue(), name)
			Expect(errors.Is(s.DeleteIndexer(name), ErrInvalidIndexIdentifier)).To(BeTrue(), name)
			_, err = s.ReadSettingsFromDisk(name)
			Expect(errors.Is(err, ErrInvalidIndexIdentifier)).To(BeTrue(), name)
		}

		Expect(s.Indices()).To(ConsistOf("site"))
		Expect(queueFile).To(BeAnExistingFile())
	})

	It("accepts plain identifiers", func() {
		Expect(ValidateIndexIdentifier("site")).To(Succeed())
		Expect(ValidateIndexIdentifier("docs-v2.1")).To(Succeed())
	})
})
