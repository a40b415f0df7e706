package backend

import (
	"io/ioutil"
	"os"
	"path"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var pages = []Document{
	{ID: "/docs/installation", Title: "Installation", Content: "Install the goframe command line tool with go install."},
	{ID: "/docs/database/migrations", Title: "Migrations", Content: "Migrations describe schema changes. Run them with the migrate command."},
	{ID: "/docs/features/rate-limiting", Title: "Rate Limiting", Content: "Throttle requests per client using a token bucket."},
}

var _ = Describe("Bleve", func() {
	Context("in memory", func() {
		var b *Bleve

		BeforeEach(func() {
			var err error
			b, err = NewBleveBackend("")
			Expect(err).NotTo(HaveOccurred())
			Expect(b.IndexDocuments("docs", pages)).To(Succeed())
		})

		AfterEach(func() {
			Expect(b.Close()).To(Succeed())
		})

		It("finds documents by body", func() {
			results, err := b.SearchIndex("docs", "schema", 0, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(Equal([]string{"/docs/database/migrations"}))
		})

		It("finds documents by title", func() {
			results, err := b.SearchIndex("docs", "installation", 0, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(ContainElement("/docs/installation"))
		})

		It("returns an empty result when nothing matches", func() {
			results, err := b.SearchIndex("docs", "kubernetes", 0, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).NotTo(BeNil())
			Expect(results).To(BeEmpty())
		})

		It("honours limit", func() {
			results, err := b.SearchIndex("docs", "the command", 0, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(1))
		})

		It("replaces and deletes single documents", func() {
			Expect(b.IndexDocument("docs", Document{ID: "/docs/installation", Title: "Installation", Content: "Download a release binary."})).To(Succeed())
			results, err := b.SearchIndex("docs", "binary", 0, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(Equal([]string{"/docs/installation"}))

			Expect(b.DeleteDocument("docs", "/docs/installation")).To(Succeed())
			results, err = b.SearchIndex("docs", "binary", 0, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(BeEmpty())
		})

		It("keeps indices apart", func() {
			results, err := b.SearchIndex("other", "schema", 0, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(BeEmpty())
		})
	})

	Context("on disk", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = ioutil.TempDir("", "docsearch-bleve")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			os.RemoveAll(dir)
		})

		It("reopens a persisted index and removes it on delete", func() {
			b, err := NewBleveBackend(dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.IndexDocuments("docs", pages)).To(Succeed())
			Expect(b.Close()).To(Succeed())

			b, err = NewBleveBackend(dir)
			Expect(err).NotTo(HaveOccurred())
			results, err := b.SearchIndex("docs", "token bucket", 0, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(Equal([]string{"/docs/features/rate-limiting"}))

			Expect(b.DeleteIndex("docs")).To(Succeed())
			_, err = os.Stat(path.Join(dir, "docs.bleve"))
			Expect(os.IsNotExist(err)).To(BeTrue())
			Expect(b.Close()).To(Succeed())
		})
	})
})
