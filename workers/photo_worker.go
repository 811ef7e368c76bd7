package workers

import (
	"log"
	"os"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/camden-git/rosterbackend/config"
	"github.com/camden-git/rosterbackend/media"
	"github.com/camden-git/rosterbackend/repository"
)

// PhotoJob asks the pool to derive thumbnail and metadata for a soldier's
// freshly uploaded photo
type PhotoJob struct {
	ServiceNumber string
	PhotoRelPath  string
}

// PhotoProcessor runs a pool of workers that generate thumbnails and extract
// EXIF metadata for uploaded soldier photos off the request path
type PhotoProcessor struct {
	JobQueue    chan PhotoJob
	Config      config.Config
	Store       media.Store
	Processor   *media.Processor
	SoldierRepo repository.SoldierRepositoryInterface
	Wg          sync.WaitGroup
	StopChan    chan struct{}
	Pending     map[string]bool
	Mutex       sync.Mutex
}

func NewPhotoProcessor(cfg config.Config, store media.Store, processor *media.Processor, soldierRepo repository.SoldierRepositoryInterface, queueSize, numWorkers int) *PhotoProcessor {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}

	pp := &PhotoProcessor{
		JobQueue:    make(chan PhotoJob, queueSize),
		Config:      cfg,
		Store:       store,
		Processor:   processor,
		SoldierRepo: soldierRepo,
		StopChan:    make(chan struct{}),
		Pending:     make(map[string]bool),
	}

	pp.Wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go pp.worker(i)
	}
	log.Printf("started %d photo worker(s) with queue size %d", numWorkers, queueSize)

	return pp
}

func (pp *PhotoProcessor) worker(id int) {
	defer pp.Wg.Done()
	log.Printf("photo worker %d started", id)
	for {
		select {
		case job, ok := <-pp.JobQueue:
			if !ok {
				log.Printf("photo worker %d stopping: job queue closed", id)
				return
			}
			log.Printf("worker %d processing photo for: %s", id, job.ServiceNumber)
			pp.processJob(job)
			pp.Mutex.Lock()
			delete(pp.Pending, job.ServiceNumber)
			pp.Mutex.Unlock()

		case <-pp.StopChan:
			log.Printf("photo worker %d stopping: stop signal received", id)
			return
		}
	}
}

func (pp *PhotoProcessor) processJob(job PhotoJob) {
	fullPath, err := pp.Store.GetFullPath(job.PhotoRelPath)
	if err != nil {
		log.Printf("ERROR resolving photo path %s for %s: %v", job.PhotoRelPath, job.ServiceNumber, err)
		return
	}
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		log.Printf("photo %s not found, skipping processing for %s", fullPath, job.ServiceNumber)
		return
	}

	img, err := imaging.Open(fullPath)
	if err != nil {
		log.Printf("ERROR opening photo %s for %s: %v", fullPath, job.ServiceNumber, err)
		return
	}

	thumbRelPath, err := pp.Processor.GenerateThumbnail(img, job.PhotoRelPath, pp.Config.ThumbnailMaxSize)
	if err != nil {
		log.Printf("ERROR generating thumbnail for %s (%s): %v", job.ServiceNumber, job.PhotoRelPath, err)
		return
	}

	meta, err := media.GetPhotoMetadata(fullPath)
	if err != nil {
		log.Printf("ERROR extracting metadata for %s (%s): %v", job.ServiceNumber, job.PhotoRelPath, err)
		meta = &media.Metadata{}
	}

	err = pp.SoldierRepo.UpdatePhotoDerived(job.ServiceNumber, &thumbRelPath, meta.Width, meta.Height, meta.TakenAt)
	if err != nil {
		log.Printf("ERROR updating photo results for %s: %v", job.ServiceNumber, err)
		return
	}

	log.Printf("successfully processed photo for: %s", job.ServiceNumber)
}

// QueueJob enqueues photo processing for a soldier unless one is already
// pending. Returns false when the job was dropped.
func (pp *PhotoProcessor) QueueJob(job PhotoJob) bool {
	pp.Mutex.Lock()
	if pp.Pending[job.ServiceNumber] {
		pp.Mutex.Unlock()
		log.Printf("photo processing for %s already pending, skipping queue", job.ServiceNumber)
		return false
	}

	pp.Pending[job.ServiceNumber] = true
	pp.Mutex.Unlock()

	select {
	case pp.JobQueue <- job:
		log.Printf("queued photo processing for: %s", job.ServiceNumber)
		return true
	default:
		log.Printf("WARNING: photo job queue full, failed to queue job for: %s", job.ServiceNumber)
		pp.Mutex.Lock()
		delete(pp.Pending, job.ServiceNumber)
		pp.Mutex.Unlock()
		return false
	}
}

func (pp *PhotoProcessor) Stop() {
	log.Println("stopping photo processor...")
	close(pp.StopChan)
	pp.Wg.Wait()
	log.Println("all photo workers stopped")
}
