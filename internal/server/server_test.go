package server

import (
	"context"
	"io/ioutil"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/beeker1121/goque"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"hurracloud.io/docsearch/internal/backend"
	"hurracloud.io/docsearch/internal/catalog"
	"hurracloud.io/docsearch/internal/indexer"
	pb "hurracloud.io/docsearch/internal/server/proto"
	"hurracloud.io/docsearch/internal/store"
)

func hrefs(docs []*pb.Document) []string {
	out := []string{}
	for _, d := range docs {
		out = append(out, d.Href)
	}
	return out
}

func writePage(root string, rel string, content string) {
	p := filepath.Join(root, filepath.FromSlash(rel))
	Expect(os.MkdirAll(filepath.Dir(p), 0755)).To(Succeed())
	Expect(ioutil.WriteFile(p, []byte(content), 0644)).To(Succeed())
}

// writeCatalog writes one page for every catalog document.
func writeCatalog(root string) {
	for _, d := range catalog.Documents() {
		writePage(root, strings.TrimPrefix(d.Href, "/")+"/page.tsx", "About "+d.Title)
	}
}

func newTestServer(metadataDir string, b backend.SearchBackend) *DocSearchServer {
	z, err := NewDocSearchServer(b, "127.0.0.1", 0, metadataDir, 2, 0)
	Expect(err).NotTo(HaveOccurred())
	z.PollInterval = 20 * time.Millisecond
	z.Watcher.PollInterval = 20 * time.Millisecond
	return z
}

func newRecordingBackend(delay time.Duration) *recordingBackend {
	b, err := backend.NewBleveBackend("")
	Expect(err).NotTo(HaveOccurred())
	return &recordingBackend{SearchBackend: b, delay: delay}
}

var _ = Describe("DocSearchServer", func() {
	var (
		ctx         context.Context
		metadataDir string
		contentDir  string
		z           *DocSearchServer
		rb          *recordingBackend
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		metadataDir, err = ioutil.TempDir("", "docsearch-meta")
		Expect(err).NotTo(HaveOccurred())
		contentDir, err = ioutil.TempDir("", "docsearch-content")
		Expect(err).NotTo(HaveOccurred())

		writePage(contentDir, "docs/installation/page.tsx", "Install the CLI with go install.")
		writePage(contentDir, "docs/database/migrations/page.tsx", "Migrations version your schema.")

		rb = newRecordingBackend(0)
		z = newTestServer(metadataDir, rb)
	})

	progress := func(z *DocSearchServer) func() *pb.IndexProgressResponse {
		return func() *pb.IndexProgressResponse {
			resp, err := z.IndexProgress(ctx, &pb.IndexProgressRequest{IndexIdentifier: "site"})
			if err != nil {
				return &pb.IndexProgressResponse{}
			}
			return resp
		}
	}

	isDone := func(resp *pb.IndexProgressResponse) bool {
		return !resp.IsRunning && resp.TotalDocuments > 0 && resp.IndexedDocuments == resp.TotalDocuments
	}

	AfterEach(func() {
		z.Stop()
		os.RemoveAll(metadataDir)
		os.RemoveAll(contentDir)
	})

	Describe("Search", func() {
		It("filters titles", func() {
			resp, err := z.Search(ctx, &pb.SearchRequest{Query: "routing"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Documents).To(HaveLen(1))
			Expect(resp.Documents[0].Title).To(Equal("Routing"))
			Expect(resp.Documents[0].Href).To(Equal("/docs/core-concepts/routing"))
		})

		It("returns nothing for an empty query", func() {
			resp, err := z.Search(ctx, &pb.SearchRequest{})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Documents).To(BeEmpty())
		})
	})

	Describe("ListDocuments", func() {
		It("returns the catalog", func() {
			resp, err := z.ListDocuments(ctx, &pb.ListDocumentsRequest{})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Documents).To(HaveLen(16))
		})
	})

	Describe("Neighbors", func() {
		It("returns previous and next pages", func() {
			resp, err := z.Neighbors(ctx, &pb.NeighborsRequest{Href: "/docs/installation"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Prev.Href).To(Equal("/docs"))
			Expect(resp.Next.Href).To(Equal("/docs/project-structure"))
		})

		It("returns NotFound for unknown pages", func() {
			_, err := z.Neighbors(ctx, &pb.NeighborsRequest{Href: "/nope"})
			Expect(status.Code(err)).To(Equal(codes.NotFound))
		})
	})

	Describe("FullTextSearch", func() {
		It("requires an index", func() {
			_, err := z.FullTextSearch(ctx, &pb.FullTextSearchRequest{Query: "schema"})
			Expect(status.Code(err)).To(Equal(codes.InvalidArgument))
		})

		It("rejects unknown indices", func() {
			_, err := z.FullTextSearch(ctx, &pb.FullTextSearchRequest{IndexIdentifier: "site", Query: "schema"})
			Expect(status.Code(err)).To(Equal(codes.NotFound))
		})

		It("returns nothing for an empty query", func() {
			resp, err := z.FullTextSearch(ctx, &pb.FullTextSearchRequest{IndexIdentifier: "site"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Documents).To(BeEmpty())
		})

		It("defaults, caps and clamps paging", func() {
			_, err := z.store.NewBatchIndexer(&indexer.IndexSettings{IndexIdentifier: "site", ContentDir: contentDir})
			Expect(err).NotTo(HaveOccurred())

			pages := []struct {
				offset, limit int32
				from, size    int
			}{
				{offset: 0, limit: 0, from: 0, size: 10},
				{offset: 4, limit: 500, from: 4, size: 100},
				{offset: -3, limit: 5, from: 0, size: 5},
				{offset: 2, limit: -1, from: 2, size: 10},
			}
			for _, p := range pages {
				_, err := z.FullTextSearch(ctx, &pb.FullTextSearchRequest{
					IndexIdentifier: "site", Query: "schema", Offset: p.offset, Limit: p.limit,
				})
				Expect(err).NotTo(HaveOccurred())
				from, size := rb.lastPage()
				Expect(from).To(Equal(p.from))
				Expect(size).To(Equal(p.size))
			}
		})
	})

	Describe("index identifiers", func() {
		It("rejects identifiers outside the metadata dir", func() {
			for _, id := range []string{".", "..", "a/../..", "a/b", `a\b`} {
				_, err := z.StartOrResumeIndex(ctx, &pb.IndexRequest{IndexIdentifier: id, ContentDir: contentDir})
				Expect(status.Code(err)).To(Equal(codes.InvalidArgument), id)
				_, err = z.DeleteIndex(ctx, &pb.DeleteIndexRequest{IndexIdentifier: id})
				Expect(status.Code(err)).To(Equal(codes.InvalidArgument), id)
				_, err = z.StopIndex(ctx, &pb.StopIndexRequest{IndexIdentifier: id})
				Expect(status.Code(err)).To(Equal(codes.InvalidArgument), id)
				_, err = z.IndexProgress(ctx, &pb.IndexProgressRequest{IndexIdentifier: id})
				Expect(status.Code(err)).To(Equal(codes.InvalidArgument), id)
				_, err = z.FullTextSearch(ctx, &pb.FullTextSearchRequest{IndexIdentifier: id, Query: "schema"})
				Expect(status.Code(err)).To(Equal(codes.InvalidArgument), id)
			}

			Expect(z.batchQueue.Length()).To(BeZero())
			Expect(z.controlQueue.Length()).To(BeZero())
			Expect(filepath.Join(metadataDir, "batch.queue")).To(BeADirectory())
			Expect(filepath.Join(metadataDir, "paused")).NotTo(BeAnExistingFile())
		})
	})

	Describe("StartOrResumeIndex", func() {
		It("validates the request", func() {
			_, err := z.StartOrResumeIndex(ctx, &pb.IndexRequest{ContentDir: contentDir})
			Expect(status.Code(err)).To(Equal(codes.InvalidArgument))

			_, err = z.StartOrResumeIndex(ctx, &pb.IndexRequest{IndexIdentifier: "site", ContentDir: filepath.Join(contentDir, "missing")})
			Expect(status.Code(err)).To(Equal(codes.InvalidArgument))
		})

		It("indexes, follows content changes and deletes", func() {
			z.StartWorkers()

			_, err := z.StartOrResumeIndex(ctx, &pb.IndexRequest{IndexIdentifier: "site", ContentDir: contentDir})
			Expect(err).NotTo(HaveOccurred())

			Eventually(func() float32 {
				resp, err := z.IndexProgress(ctx, &pb.IndexProgressRequest{IndexIdentifier: "site"})
				if err != nil || resp.IsRunning {
					return 0
				}
				return resp.PercentageDone
			}, 5*time.Second, 20*time.Millisecond).Should(Equal(float32(100)))

			resp, err := z.FullTextSearch(ctx, &pb.FullTextSearchRequest{IndexIdentifier: "site", Query: "schema"})
			Expect(err).NotTo(HaveOccurred())
			Expect(hrefs(resp.Documents)).To(Equal([]string{"/docs/database/migrations"}))
			Expect(resp.Documents[0].Title).To(Equal("Migrations"))

			writePage(contentDir, "docs/features/resources/page.tsx", "Resources transform models into JSON.")
			Eventually(func() []string {
				resp, err := z.FullTextSearch(ctx, &pb.FullTextSearchRequest{IndexIdentifier: "site", Query: "transform"})
				if err != nil {
					return nil
				}
				return hrefs(resp.Documents)
			}, 5*time.Second, 20*time.Millisecond).Should(Equal([]string{"/docs/features/resources"}))

			_, err = z.DeleteIndex(ctx, &pb.DeleteIndexRequest{IndexIdentifier: "site"})
			Expect(err).NotTo(HaveOccurred())
			Eventually(func() codes.Code {
				_, err := z.IndexProgress(ctx, &pb.IndexProgressRequest{IndexIdentifier: "site"})
				return status.Code(err)
			}, 5*time.Second, 20*time.Millisecond).Should(Equal(codes.NotFound))
		})
	})

	Describe("StopIndex", func() {
		It("interrupts a running job that a later request resumes", func() {
			writeCatalog(contentDir)
			rb.delay = 50 * time.Millisecond
			z.parallelism = 1
			z.StartWorkers()

			_, err := z.StartOrResumeIndex(ctx, &pb.IndexRequest{IndexIdentifier: "site", ContentDir: contentDir})
			Expect(err).NotTo(HaveOccurred())
			Eventually(progress(z), 5*time.Second, 10*time.Millisecond).Should(
				WithTransform(func(r *pb.IndexProgressResponse) bool { return r.IsRunning && r.IndexedDocuments > 0 }, BeTrue()))

			_, err = z.StopIndex(ctx, &pb.StopIndexRequest{IndexIdentifier: "site"})
			Expect(err).NotTo(HaveOccurred())
			Eventually(progress(z), 5*time.Second, 10*time.Millisecond).Should(
				WithTransform(func(r *pb.IndexProgressResponse) bool { return r.IsRunning }, BeFalse()))

			stopped := progress(z)()
			Expect(stopped.TotalDocuments).To(Equal(int32(16)))
			Expect(stopped.IndexedDocuments).To(BeNumerically("<", 16))
			Expect(rb.bulkCount()).To(BeNumerically("<", 16))

			_, err = z.StartOrResumeIndex(ctx, &pb.IndexRequest{IndexIdentifier: "site"})
			Expect(err).NotTo(HaveOccurred())
			Eventually(progress(z), 10*time.Second, 20*time.Millisecond).Should(WithTransform(isDone, BeTrue()))
			Expect(rb.bulkCount()).To(Equal(16))
		})
	})

	Describe("Stop", func() {
		It("leaves an interrupted job resumable", func() {
			writeCatalog(contentDir)
			rb.delay = 50 * time.Millisecond
			z.parallelism = 1
			z.StartWorkers()

			_, err := z.StartOrResumeIndex(ctx, &pb.IndexRequest{IndexIdentifier: "site", ContentDir: contentDir})
			Expect(err).NotTo(HaveOccurred())
			Eventually(progress(z), 5*time.Second, 10*time.Millisecond).Should(
				WithTransform(func(r *pb.IndexProgressResponse) bool { return r.IsRunning && r.IndexedDocuments > 0 }, BeTrue()))

			z.Stop()
			Expect(rb.isClosed()).To(BeTrue())

			i, err := (&store.Store{MetadataDir: metadataDir}).GetBatchIndexer("site")
			Expect(err).NotTo(HaveOccurred())
			total, indexed, _, err := i.CheckProgress()
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(16))
			Expect(indexed).To(BeNumerically(">", 0))
			Expect(indexed).To(BeNumerically("<", 16))

			queue, err := goque.OpenQueue(filepath.Join(metadataDir, "batch.queue"))
			Expect(err).NotTo(HaveOccurred())
			Expect(queue.Length()).To(Equal(uint64(1)))
			Expect(queue.Close()).To(Succeed())

			restarted := newRecordingBackend(0)
			z = newTestServer(metadataDir, restarted)
			z.parallelism = 1
			z.StartWorkers()
			Eventually(progress(z), 10*time.Second, 20*time.Millisecond).Should(WithTransform(isDone, BeTrue()))
			Expect(restarted.bulkCount()).To(Equal(16 - indexed))
		})

		It("returns from a second call only after shutdown completes", func() {
			served := make(chan error, 1)
			go func() { served <- z.Start() }()
			Eventually(z.Addr, 5*time.Second).ShouldNot(BeNil())

			go z.Stop()
			Eventually(served, 5*time.Second).Should(Receive(BeNil()))

			z.Stop()
			Expect(rb.isClosed()).To(BeTrue())
		})
	})

	Describe("over gRPC", func() {
		It("serves the DocSearch service", func() {
			lis := bufconn.Listen(1024 * 1024)
			s := grpc.NewServer()
			pb.RegisterDocSearchServer(s, z)
			go s.Serve(lis)
			defer s.Stop()

			conn, err := grpc.DialContext(ctx, "bufnet",
				grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return lis.Dial() }),
				grpc.WithInsecure())
			Expect(err).NotTo(HaveOccurred())
			defer conn.Close()

			client := pb.NewDocSearchClient(conn)
			resp, err := client.Search(ctx, &pb.SearchRequest{Query: "Installation"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Documents).To(HaveLen(1))
			Expect(resp.Documents[0].Href).To(Equal("/docs/installation"))

			_, err = client.Neighbors(ctx, &pb.NeighborsRequest{Href: "/nope"})
			Expect(status.Code(err)).To(Equal(codes.NotFound))
		})
	})
})
