package eventbridge

import (
	"sync"
	"testing"

	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSequenceCounter(t *testing.T) {
	s := &ClientSession{}

	stop := make(chan struct{})
	var reader sync.WaitGroup

	reader.Add(1)
	go func() {
		defer reader.Done()
		for {
			select {
			case <-stop:
				return
			default:
				_ = s.seqNow()
			}
		}
	}()

	var writers sync.WaitGroup
	for n := 0; n < 8; n++ {
		writers.Add(1)
		go func() {
			defer writers.Done()
			for i := 0; i < 1000; i++ {
				s.nextSeq()
			}
		}()
	}

	writers.Wait()
	close(stop)
	reader.Wait()

	testutil.Assert(t, uint64(8000), s.seqNow(), "every issued number counted once")
}

func TestRebindRosterClosesVanishedGroup(t *testing.T) {
	gid := primitive.NewObjectID()

	s := &ClientSession{listeners: map[string]*listener{
		scopeGroup + gid.Hex(): {cancel: func() {}},
	}}
	s.setOpen(openConversation{id: gid.Hex(), group: true, ok: true})

	s.rebindRoster(model.Roster{})

	testutil.Assert(t, false, s.openNow().ok, "open conversation closed")
	testutil.Assert(t, 0, len(s.listeners), "group listener torn down")
}

func TestRebindRosterKeepsPresentGroup(t *testing.T) {
	gid := primitive.NewObjectID()

	s := &ClientSession{listeners: map[string]*listener{
		scopeGroup + gid.Hex(): {cancel: func() {}},
	}}
	s.setOpen(openConversation{id: gid.Hex(), group: true, ok: true})

	s.rebindRoster(model.Roster{Groups: []model.Group{{ID: gid}}})

	testutil.Assert(t, true, s.openNow().ok, "open conversation survives")
	testutil.Assert(t, 1, len(s.listeners), "group listener kept")
}
