package mutate

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func marshalDoc(t *testing.T, msg model.Message) bson.M {
	raw, err := bson.Marshal(msg)
	testutil.IsNil(t, err, "message marshals")

	doc := bson.M{}
	testutil.IsNil(t, bson.Unmarshal(raw, &doc), "document decodes")

	return doc
}

func TestPrivateMirrors(t *testing.T) {
	sender := primitive.NewObjectID()
	peer := primitive.NewObjectID()

	msg := model.Message{
		ID:         uuid.NewString(),
		Owner:      sender,
		Peer:       peer,
		Text:       "lunch?",
		SenderID:   sender,
		SenderName: "jordan",
		To:         peer,
		Timestamp:  time.Now(),
		ReadBy:     map[string]bool{sender.Hex(): true},
	}

	own, mirror := privateMirrors(msg)

	docA := marshalDoc(t, own)
	docB := marshalDoc(t, mirror)

	idA := docA["_id"].(primitive.ObjectID)
	idB := docB["_id"].(primitive.ObjectID)

	testutil.Assert(t, false, idA.IsZero(), "first document id is set")
	testutil.Assert(t, false, idB.IsZero(), "second document id is set")
	testutil.Assert(t, false, idA == idB, "mirrors are distinct documents")

	testutil.Assert(t, msg.ID, docA["message_id"].(string), "message id survives")
	testutil.Assert(t, docA["message_id"].(string), docB["message_id"].(string), "message id shared across mirrors")

	testutil.Assert(t, sender, docA["owner"].(primitive.ObjectID), "sender side keeps sender as owner")
	testutil.Assert(t, peer, docA["peer"].(primitive.ObjectID), "sender side keeps peer")
	testutil.Assert(t, peer, docB["owner"].(primitive.ObjectID), "mirror swaps owner")
	testutil.Assert(t, sender, docB["peer"].(primitive.ObjectID), "mirror swaps peer")

	mirror.DocID = own.DocID
	mirror.Owner, mirror.Peer = mirror.Peer, mirror.Owner
	testutil.Assert(t, true, reflect.DeepEqual(own, mirror), "mirrors differ only in orientation")
}
