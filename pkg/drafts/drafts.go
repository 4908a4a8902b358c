package drafts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/boltdb/bolt"
	"github.com/convox/logger"
	"github.com/deckops/deck/pkg/structs"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

const root = "drafts"

// Draft is a cluster configuration of a deploy stage that has not been saved
// to its pipeline yet.
type Draft struct {
	Id            string                      `json:"id"`
	Pipeline      string                      `json:"pipeline"`
	Stage         string                      `json:"stage"`
	Created       time.Time                   `json:"created"`
	Updated       time.Time                   `json:"updated"`
	Configuration structs.DeployConfiguration `json:"configuration"`
}

type Drafts []Draft

func (ds Drafts) Less(i, j int) bool {
	if !ds[i].Created.Equal(ds[j].Created) {
		return ds[i].Created.Before(ds[j].Created)
	}

	return ds[i].Id < ds[j].Id
}

// Store keeps drafts in a bolt database, one bucket per pipeline stage.
type Store struct {
	Logger *logger.Logger

	db  *bolt.DB
	now func() time.Time
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.WithStack(err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "could not open drafts: %s", path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(root))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.WithStack(err)
	}

	s := &Store{
		Logger: logger.New("ns=drafts"),
		db:     db,
		now:    time.Now,
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Add stores conf as a new draft of the stage and returns it.
func (s *Store) Add(pipeline, stage string, conf structs.DeployConfiguration) (*Draft, error) {
	log := s.Logger.At("add").Namespace("pipeline=%s stage=%s", pipeline, stage)

	if pipeline == "" || stage == "" {
		return nil, errors.Errorf("pipeline and stage are required")
	}

	now := s.now().UTC()

	d := &Draft{
		Id:            uuid.NewV4().String(),
		Pipeline:      pipeline,
		Stage:         stage,
		Created:       now,
		Updated:       now,
		Configuration: conf,
	}

	if err := s.put(d); err != nil {
		return nil, log.Error(err)
	}

	log.Logf("id=%s", d.Id)

	return d, nil
}

// Update replaces the configuration of an existing draft.
func (s *Store) Update(pipeline, stage, id string, conf structs.DeployConfiguration) (*Draft, error) {
	d, err := s.Get(pipeline, stage, id)
	if err != nil {
		return nil, err
	}

	d.Configuration = conf
	d.Updated = s.now().UTC()

	if err := s.put(d); err != nil {
		return nil, s.Logger.At("update").Error(err)
	}

	return d, nil
}

func (s *Store) Get(pipeline, stage, id string) (*Draft, error) {
	var d *Draft

	err := s.db.View(func(tx *bolt.Tx) error {
		b := bucket(tx, pipeline, stage)
		if b == nil {
			return structs.ErrNotFound("draft", id)
		}

		data := b.Get([]byte(id))
		if data == nil {
			return structs.ErrNotFound("draft", id)
		}

		d = &Draft{}

		return json.Unmarshal(data, d)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return d, nil
}

// List returns the drafts of a stage, oldest first.
func (s *Store) List(pipeline, stage string) (Drafts, error) {
	ds := Drafts{}

	err := s.db.View(func(tx *bolt.Tx) error {
		b := bucket(tx, pipeline, stage)
		if b == nil {
			return nil
		}

		return b.ForEach(func(k, v []byte) error {
			var d Draft

			if err := json.Unmarshal(v, &d); err != nil {
				return errors.Wrapf(err, "invalid draft: %s", k)
			}

			ds = append(ds, d)

			return nil
		})
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sort.Slice(ds, ds.Less)

	return ds, nil
}

func (s *Store) Remove(pipeline, stage, id string) error {
	if _, err := s.Get(pipeline, stage, id); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return bucket(tx, pipeline, stage).Delete([]byte(id))
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Clear removes every draft of a stage.
func (s *Store) Clear(pipeline, stage string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		p := tx.Bucket([]byte(root)).Bucket([]byte(pipeline))
		if p == nil || p.Bucket([]byte(stage)) == nil {
			return nil
		}

		return p.DeleteBucket([]byte(stage))
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Apply appends the drafts of a deploy stage to its cluster list.
func (s *Store) Apply(pipeline string, st *structs.Stage) error {
	ds, err := s.List(pipeline, st.RefId)
	if err != nil {
		return err
	}

	for _, d := range ds {
		st.Clusters = append(st.Clusters, *d.Configuration.DeepCopy())
	}

	return nil
}

func (s *Store) put(d *Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return errors.WithStack(err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(root))

		for _, name := range []string{d.Pipeline, d.Stage} {
			b, err := cur.CreateBucketIfNotExists([]byte(name))
			if err != nil {
				return err
			}

			cur = b
		}

		return cur.Put([]byte(d.Id), data)
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func bucket(tx *bolt.Tx, pipeline, stage string) *bolt.Bucket {
	cur := tx.Bucket([]byte(root))

	for _, name := range []string{pipeline, stage} {
		if cur = cur.Bucket([]byte(name)); cur == nil {
			return nil
		}
	}

	return cur
}
