package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path"
	"sync"
	"time"

	"github.com/beeker1121/goque"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"hurracloud.io/docsearch/internal/backend"
	"hurracloud.io/docsearch/internal/catalog"
	"hurracloud.io/docsearch/internal/indexer"
	"hurracloud.io/docsearch/internal/search"
	pb "hurracloud.io/docsearch/internal/server/proto"
	"hurracloud.io/docsearch/internal/store"
	"hurracloud.io/docsearch/internal/watcher"
)

const (
	defaultFullTextLimit = 10
	maxFullTextLimit     = 100
)

type DocSearchServer struct {
	pb.UnimplementedDocSearchServer

	IndexQueue   *goque.Queue
	Watcher      *watcher.Watcher
	PollInterval time.Duration

	index             *search.Index
	backend           backend.SearchBackend
	batchQueue        *goque.Queue
	controlQueue      *goque.Queue
	interruptChannel  chan string
	currentRunningJob string
	jobMutex          sync.Mutex
	store             *store.Store
	listen            string
	port              int
	parallelism       int
	fileSizeThreshold int64
	grpcServer        *grpc.Server
	addr              net.Addr
	addrMutex         sync.Mutex
	quit              chan struct{}
	workers           sync.WaitGroup
	stopOnce          sync.Once
}

type controlIndexOp struct {
	Type            string
	IndexIdentifier string
}

func NewDocSearchServer(searchBackend backend.SearchBackend,
	listen string,
	port int,
	metadataDir string,
	parallelism int,
	fileSizeThreshold int64,
) (*DocSearchServer, error) {

	if err := os.MkdirAll(metadataDir, 0755); err != nil {
		return nil, fmt.Errorf("Failed to create metadata dir: %v", err)
	}

	interruptChannel := make(chan string)

	indexQueue, err := goque.OpenQueue(path.Join(metadataDir, "single.queue"))
	if err != nil {
		return nil, fmt.Errorf("Failed to open single queue: %v", err)
	}

	batchQueue, err := goque.OpenQueue(path.Join(metadataDir, "batch.queue"))
	if err != nil {
		indexQueue.Close()
		return nil, fmt.Errorf("Failed to open batch queue: %v", err)
	}

	controlQueue, err := goque.OpenQueue(path.Join(metadataDir, "control.queue"))
	if err != nil {
		indexQueue.Close()
		batchQueue.Close()
		return nil, fmt.Errorf("Failed to open control queue: %v", err)
	}

	docStore := &store.Store{
		MetadataDir:      metadataDir,
		SearchBackend:    searchBackend,
		InterruptChannel: interruptChannel,
	}

	z := &DocSearchServer{
		IndexQueue:        indexQueue,
		Watcher:           watcher.New(metadataDir, indexQueue),
		PollInterval:      time.Second,
		index:             search.Default(),
		batchQueue:        batchQueue,
		controlQueue:      controlQueue,
		interruptChannel:  interruptChannel,
		backend:           searchBackend,
		store:             docStore,
		listen:            listen,
		port:              port,
		parallelism:       parallelism,
		fileSizeThreshold: fileSizeThreshold,
		quit:              make(chan struct{}),
		grpcServer:        grpc.NewServer(),
	}
	pb.RegisterDocSearchServer(z.grpcServer, z)
	return z, nil
}

// Start runs the job workers and serves gRPC until Stop is called.
func (z *DocSearchServer) Start() error {
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", z.listen, z.port))
	if err != nil {
		return fmt.Errorf("Failed to listen: %v", err)
	}

	z.StartWorkers()

	z.addrMutex.Lock()
	z.addr = lis.Addr()
	z.addrMutex.Unlock()

	log.Infof("DocSearch Server listening on %s", lis.Addr())
	if err = z.grpcServer.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("DocSearch failed to listen: %v", err)
	}

	return nil
}

// StartWorkers starts the content watcher and the goroutines draining
// the job queues.
func (z *DocSearchServer) StartWorkers() {
	go func() {
		if err := z.Watcher.Watch(); err != nil {
			log.Errorf("Content watcher stopped: %v", err)
		}
	}()

	z.workers.Add(3)
	go z.processBatchJobs()
	go z.processControlJobs()
	go z.processFileJobs()
}

// Addr returns the address the gRPC server listens on, or nil before
// Start.
func (z *DocSearchServer) Addr() net.Addr {
	z.addrMutex.Lock()
	defer z.addrMutex.Unlock()
	return z.addr
}

// Stop interrupts a running batch job, waits for the workers and
// releases queues, watcher and backend. Concurrent callers return only
// once all of that is done. An interrupted batch job stays queued and
// resumes on the next start.
func (z *DocSearchServer) Stop() {
	z.stopOnce.Do(func() {
		z.grpcServer.GracefulStop()

		close(z.quit)
		if job := z.runningJob(); job != "" {
			select {
			case z.interruptChannel <- job:
			case <-time.After(5 * time.Second):
				log.Warningf("Timed out interrupting index %s", job)
			}
		}

		z.workers.Wait()
		z.Watcher.Close()

		z.batchQueue.Close()
		z.controlQueue.Close()
		z.IndexQueue.Close()

		if err := z.backend.Close(); err != nil {
			log.Errorf("Error while closing search backend: %v", err)
		}
	})
}

func (z *DocSearchServer) Search(ctx context.Context, req *pb.SearchRequest) (*pb.SearchResponse, error) {
	log.Debugf("Received Search Request. Query=%s", req.Query)
	docs := []*pb.Document{}
	for d := range z.index.Search(req.Query) {
		docs = append(docs, toProto(d))
	}
	return &pb.SearchResponse{Documents: docs}, nil
}

func (z *DocSearchServer) ListDocuments(ctx context.Context, req *pb.ListDocumentsRequest) (*pb.ListDocumentsResponse, error) {
	docs := []*pb.Document{}
	for _, d := range catalog.Documents() {
		docs = append(docs, toProto(d))
	}
	return &pb.ListDocumentsResponse{Documents: docs}, nil
}

func (z *DocSearchServer) Neighbors(ctx context.Context, req *pb.NeighborsRequest) (*pb.NeighborsResponse, error) {
	prev, next, err := catalog.Neighbors(req.Href)
	if errors.Is(err, catalog.ErrUnknownDocument) {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	if err != nil {
		return nil, err
	}

	resp := &pb.NeighborsResponse{}
	if prev != nil {
		resp.Prev = toProto(*prev)
	}
	if next != nil {
		resp.Next = toProto(*next)
	}
	return resp, nil
}

func (z *DocSearchServer) FullTextSearch(ctx context.Context, req *pb.FullTextSearchRequest) (*pb.FullTextSearchResponse, error) {
	log.Debugf("Received Full Text Search Request. Query=%s, IndexID=%s", req.Query, req.IndexIdentifier)
	if err := validateIndexIdentifier(req.IndexIdentifier); err != nil {
		return nil, err
	}
	if req.Query == "" {
		return &pb.FullTextSearchResponse{Documents: []*pb.Document{}}, nil
	}

	if _, err := z.store.ReadSettingsFromDisk(req.IndexIdentifier); err == store.ErrIndexDoesNotExist {
		return nil, status.Errorf(codes.NotFound, "index %s does not exist", req.IndexIdentifier)
	} else if err != nil {
		return nil, err
	}

	limit := int(req.Limit)
	if limit <= 0 {
		limit = defaultFullTextLimit
	} else if limit > maxFullTextLimit {
		limit = maxFullTextLimit
	}
	offset := int(req.Offset)
	if offset < 0 {
		offset = 0
	}

	hrefs, err := z.backend.SearchIndex(req.IndexIdentifier, req.Query, offset, limit)
	if err != nil {
		log.Errorf("Error while searching index %s :%v", req.IndexIdentifier, err)
		return nil, err
	}
	log.Debugf("Search Results (%d): %v", len(hrefs), hrefs)

	docs := []*pb.Document{}
	for _, href := range hrefs {
		d, ok := catalog.Lookup(href)
		if !ok {
			log.Warningf("Index %s returned unknown page %s", req.IndexIdentifier, href)
			continue
		}
		docs = append(docs, toProto(d))
	}
	return &pb.FullTextSearchResponse{Documents: docs}, nil
}

func (z *DocSearchServer) StartOrResumeIndex(ctx context.Context, req *pb.IndexRequest) (*pb.IndexResponse, error) {
	log.Debugf("Received Index Request: %v", req)
	if err := validateIndexIdentifier(req.IndexIdentifier); err != nil {
		return nil, err
	}
	if req.ContentDir != "" {
		if info, err := os.Stat(req.ContentDir); err != nil || !info.IsDir() {
			return nil, status.Errorf(codes.InvalidArgument, "content_dir %s is not a directory", req.ContentDir)
		}
	}

	_, err := z.batchQueue.EnqueueObject(req)
	if err != nil {
		return nil, fmt.Errorf("Failed to queue batch index job: %v", err)
	}
	return &pb.IndexResponse{}, nil
}

func (z *DocSearchServer) IndexProgress(ctx context.Context, req *pb.IndexProgressRequest) (*pb.IndexProgressResponse, error) {
	if err := validateIndexIdentifier(req.IndexIdentifier); err != nil {
		return nil, err
	}
	indexer, err := z.store.GetBatchIndexer(req.IndexIdentifier)
	if err == store.ErrIndexDoesNotExist {
		return nil, status.Errorf(codes.NotFound, "index %s does not exist", req.IndexIdentifier)
	}
	if err != nil {
		return nil, err
	}

	total, indexed, percentage, err := indexer.CheckProgress()

	if err != nil {
		log.Errorf("Error while checking on index %s progress: %v", req.IndexIdentifier, err)
		return nil, err
	}
	isRunning := z.runningJob() == req.IndexIdentifier
	log.Tracef("Progress of index %s is at %f (is_running=%v)", req.IndexIdentifier, percentage, isRunning)

	return &pb.IndexProgressResponse{PercentageDone: float32(percentage),
		IndexedDocuments: int32(indexed),
		TotalDocuments:   int32(total),
		IsRunning:        isRunning,
	}, nil
}

func (z *DocSearchServer) DeleteIndex(ctx context.Context, req *pb.DeleteIndexRequest) (*pb.DeleteIndexResponse, error) {
	if err := validateIndexIdentifier(req.IndexIdentifier); err != nil {
		return nil, err
	}
	err := z.Watcher.StopWatching(req.IndexIdentifier)
	if err != nil {
		log.Errorf("Error while stopping watcher on index: %s: %s", req.IndexIdentifier, err)
		return nil, err
	}

	_, err = z.controlQueue.EnqueueObject(&controlIndexOp{Type: "delete", IndexIdentifier: req.IndexIdentifier})
	if err != nil {
		return nil, fmt.Errorf("Failed to queue delete index job: %v", err)
	}

	return &pb.DeleteIndexResponse{}, nil
}

func (z *DocSearchServer) StopIndex(ctx context.Context, req *pb.StopIndexRequest) (*pb.StopIndexResponse, error) {
	if err := validateIndexIdentifier(req.IndexIdentifier); err != nil {
		return nil, err
	}
	err := z.Watcher.StopWatching(req.IndexIdentifier)
	if err != nil {
		log.Errorf("Error while stopping watcher on index: %s: %s", req.IndexIdentifier, err)
		return nil, err
	}

	_, err = z.controlQueue.EnqueueObject(&controlIndexOp{Type: "stop", IndexIdentifier: req.IndexIdentifier})
	if err != nil {
		return nil, fmt.Errorf("Failed to queue stop index job: %v", err)
	}
	return &pb.StopIndexResponse{}, nil
}

func (z *DocSearchServer) runningJob() string {
	z.jobMutex.Lock()
	defer z.jobMutex.Unlock()
	return z.currentRunningJob
}

func (z *DocSearchServer) setRunningJob(indexName string) {
	z.jobMutex.Lock()
	z.currentRunningJob = indexName
	z.jobMutex.Unlock()
}

// interrupt asks the batch worker to stop indexName if it is running.
func (z *DocSearchServer) interrupt(indexName string) {
	if z.runningJob() != indexName {
		return
	}
	select {
	case z.interruptChannel <- indexName:
	case <-z.quit:
	}
}

// wait blocks for one poll interval and reports false once the server
// is stopping.
func (z *DocSearchServer) wait(ticker *time.Ticker) bool {
	select {
	case <-ticker.C:
		return true
	case <-z.quit:
		return false
	}
}

func (z *DocSearchServer) processControlJobs() {
	defer z.workers.Done()
	ticker := time.NewTicker(z.PollInterval)
	defer ticker.Stop()

	for z.wait(ticker) {
		log.Trace("Polling Control Queue")
		item, err := z.controlQueue.Peek()
		if err == goque.ErrEmpty {
			log.Trace("No jobs found in Control Queue")
			continue
		}
		if err != nil {
			log.Errorf("Failed to poll Control Queue: %v", err)
			continue
		}

		var req controlIndexOp
		if err = item.ToObject(&req); err != nil {
			log.Errorf("Dropping unreadable control job: %v", err)
		}

		switch req.Type {
		case "delete":
			log.Infof("Processing delete job for index '%s'", req.IndexIdentifier)
			z.deleteIndex(req.IndexIdentifier)
		case "stop":
			log.Infof("Processing stop request for index '%s'", req.IndexIdentifier)
			z.interrupt(req.IndexIdentifier)
		}

		// On completion, remove from queue
		_, err = z.controlQueue.Dequeue()
		if err != nil {
			log.Errorf("Failed to dequeue job from queue: %v", err)
		}
	}
}

func (z *DocSearchServer) deleteIndex(indexName string) {
	indexer, err := z.store.GetBatchIndexer(indexName)
	if err == store.ErrIndexDoesNotExist {
		log.Infof("Index '%s' has already been deleted", indexName)
		return
	}
	if err != nil {
		log.Errorf("Could not retrieve indexer metadata: %s: %v", indexName, err)
		return
	}

	z.interrupt(indexName)

	// Delete index (metadata and storage)
	if err := indexer.DeleteIndex(); err != nil {
		log.Errorf("Error while deleting index %s: %v", indexName, err)
		return
	}
	if err := z.store.DeleteIndexer(indexName); err != nil {
		log.Errorf("Error while deleting metadata of index %s: %v", indexName, err)
		return
	}
	log.Infof("Index '%s' has been deleted successfully", indexName)
}

func (z *DocSearchServer) processBatchJobs() {
	defer z.workers.Done()
	ticker := time.NewTicker(z.PollInterval)
	defer ticker.Stop()

	for z.wait(ticker) {
		log.Trace("Polling Batch Queue")
		item, err := z.batchQueue.Peek()
		if err == goque.ErrEmpty {
			log.Trace("No jobs found in Batch Queue")
			// Unblock interrupts sent for a job that just finished
			select {
			case <-z.interruptChannel:
			default:
			}
			continue
		}
		if err != nil {
			log.Errorf("Failed to poll Batch Queue: %v", err)
			continue
		}

		var indexRequest pb.IndexRequest
		if err = item.ToObject(&indexRequest); err != nil {
			log.Errorf("Dropping unreadable batch job: %v", err)
		} else {
			z.runBatchJob(&indexRequest)
		}

		select {
		case <-z.quit:
			log.Infof("Leaving batch job of index '%s' queued until next start", indexRequest.IndexIdentifier)
			return
		default:
		}

		// On completion, remove from queue
		_, err = z.batchQueue.Dequeue()
		if err != nil {
			log.Errorf("Failed to dequeue job from queue: %v", err)
		}
	}
}

func (z *DocSearchServer) runBatchJob(indexRequest *pb.IndexRequest) {
	log.Debugf("Processing batch job for index '%s'", indexRequest.IndexIdentifier)

	i, err := z.store.GetBatchIndexer(indexRequest.IndexIdentifier)
	if err != nil && err != store.ErrIndexDoesNotExist {
		log.Errorf("Error while checking if this request is resuming existing index: %s", err)
		return
	}

	if err == store.ErrIndexDoesNotExist || indexRequest.ContentDir != "" {
		if indexRequest.ContentDir == "" {
			log.Errorf("Cannot resume index %s: it does not exist and no content dir was given", indexRequest.IndexIdentifier)
			return
		}

		settings := &indexer.IndexSettings{
			ContentDir:        indexRequest.ContentDir,
			IndexIdentifier:   indexRequest.IndexIdentifier,
			ExcludePatterns:   indexRequest.ExcludePatterns,
			Parallelism:       z.parallelism,
			FileSizeThreshold: z.fileSizeThreshold,
		}
		if i != nil && !sameSettings(i.IndexSettings, settings) {
			log.Infof("Settings of index %s changed, indexing from scratch", indexRequest.IndexIdentifier)
			if err := i.DeleteIndex(); err != nil {
				log.Warningf("Could not clear previous run of index %s: %v", indexRequest.IndexIdentifier, err)
			}
			i = nil
		}
		if i == nil {
			i, err = z.store.NewBatchIndexer(settings)
			if err != nil {
				log.Errorf("Error creating index metadata :%s: %v", indexRequest.IndexIdentifier, err)
				return
			}
		}
	}

	err = z.Watcher.StartOrResumeWatching(i.IndexSettings.IndexIdentifier)
	if err != nil {
		log.Errorf("Error while start watcher on index: %s: %s", i.IndexSettings.IndexIdentifier, err)
	}

	z.setRunningJob(indexRequest.IndexIdentifier)
	err = i.Index()
	z.setRunningJob("")
	if err != nil {
		log.Errorf("Failed while indexing %s: %v", indexRequest.IndexIdentifier, err)
		return
	}

	log.Infof("Indexing '%s' has completed successfully", indexRequest.IndexIdentifier)
}

func (z *DocSearchServer) processFileJobs() {
	defer z.workers.Done()
	interval := z.PollInterval / 4
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for z.wait(ticker) {
		log.Trace("Polling Index Queue")
		item, err := z.IndexQueue.Peek()
		if err == goque.ErrEmpty {
			log.Trace("No jobs found in Index Queue")
			continue
		}
		if err != nil {
			log.Errorf("Failed to poll Index Queue: %v", err)
			continue
		}

		var indexRequest watcher.FileIndexRequest
		if err = item.ToObject(&indexRequest); err != nil {
			log.Errorf("Dropping unreadable file job: %v", err)
		} else {
			z.runFileJob(&indexRequest)
		}

		// On completion, remove from queue
		_, err = z.IndexQueue.Dequeue()
		if err != nil {
			log.Errorf("Failed to dequeue job from queue: %v", err)
		}
	}
}

func (z *DocSearchServer) runFileJob(indexRequest *watcher.FileIndexRequest) {
	if z.store.IsStaleIndex(indexRequest.IndexIdentifier) {
		log.Warningf("Index %s is already deleted, will not index file", indexRequest.IndexIdentifier)
		return
	}

	log.Debugf("Process index file request for file '%s' in index '%s'", indexRequest.FilePath, indexRequest.IndexIdentifier)
	indexer, err := z.store.GetFileIndexer(indexRequest.IndexIdentifier)
	if err != nil {
		log.Errorf("Error retrieving index metadata :%s: %v", indexRequest.IndexIdentifier, err)
		return
	}
	if err := indexer.IndexFile(indexRequest.FilePath); err != nil {
		log.Errorf("Failed indexing '%s': %v", indexRequest.FilePath, err)
		return
	}
	log.Debugf("Indexing '%s' has completed successfully", indexRequest.FilePath)
}

func validateIndexIdentifier(indexName string) error {
	if err := store.ValidateIndexIdentifier(indexName); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

func sameSettings(a *indexer.IndexSettings, b *indexer.IndexSettings) bool {
	if a.ContentDir != b.ContentDir || len(a.ExcludePatterns) != len(b.ExcludePatterns) {
		return false
	}
	for i := range a.ExcludePatterns {
		if a.ExcludePatterns[i] != b.ExcludePatterns[i] {
			return false
		}
	}
	return true
}

func toProto(d catalog.Document) *pb.Document {
	return &pb.Document{Title: d.Title, Href: d.Href}
}
