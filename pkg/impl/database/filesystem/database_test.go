package filesystem_test

import (
	"sync"

	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-test/deep"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/ifcimport/pkg/database"
	"github.com/mandelsoft/ifcimport/pkg/testutils"

	me "github.com/mandelsoft/ifcimport/pkg/impl/database/filesystem"
)

var _ = Describe("database", func() {
	var db database.Database[Object]
	var fs vfs.FileSystem

	BeforeEach(func() {
		fs = Must(testutils.Fixtures("testdata"))
		db = Must(me.New[Object](Scheme, "testdata", fs))
	})

	AfterEach(func() {
		vfs.Cleanup(fs)
	})

	Context("list", func() {
		It("flat ns", func() {
			list := Must(db.ListObjects(TYPE_A, "ns1"))
			Expect(list).To(ConsistOf(NewA("ns1", "o1", "A-ns1-o1")))
		})

		It("deep ns", func() {
			list := Must(db.ListObjects(TYPE_B, "ns11"))
			Expect(list).To(BeEmpty())

			list = Must(db.ListObjects(TYPE_B, "ns1/sub1"))
			Expect(list).To(ConsistOf(NewB("ns1/sub1", "o1", "B-ns1/sub1-o1")))
		})

		It("all", func() {
			list := Must(db.ListObjects(TYPE_B, ""))
			Expect(list).To(ConsistOf(
				NewB("ns1/sub1", "o1", "B-ns1/sub1-o1"),
				NewB("ns2", "o2", "B-ns2-o2"),
			))
		})

		It("ids of all types", func() {
			list := Must(db.ListObjectIds("", ""))
			Expect(list).To(ConsistOf(
				database.NewObjectId(TYPE_A, "ns1", "o1"),
				database.NewObjectId(TYPE_A, "ns2", "o1"),
				database.NewObjectId(TYPE_B, "ns1/sub1", "o1"),
				database.NewObjectId(TYPE_B, "ns2", "o2"),
			))
		})
	})

	Context("write", func() {
		It("writes object", func() {
			a := NewA("ns3/sub1", "o2", "A-ns3/sub1-o2")
			MustBeSuccessful(db.SetObject(a))

			Expect(deep.Equal(Must(db.GetObject(a)), a)).To(BeNil())
			list := Must(db.ListObjects(TYPE_A, "ns3/sub1"))
			Expect(list).To(ConsistOf(a))
		})

		It("deletes object", func() {
			id := database.NewObjectId(TYPE_A, "ns1", "o1")
			Expect(db.DeleteObject(id)).To(BeTrue())
			Expect(db.DeleteObject(id)).To(BeFalse())
			_, err := db.GetObject(id)
			Expect(err).To(MatchError(database.ErrNotExist))
		})

		It("rejects invalid names", func() {
			Expect(db.SetObject(NewA("ns1", "../x", ""))).NotTo(Succeed())
		})
	})

	Context("event handler", func() {
		It("gets events for all objects", func() {
			h := &Handler{}
			MustBeSuccessful(db.RegisterHandler(h, true, TYPE_A))
			Expect(h.ids).To(ConsistOf(
				database.NewObjectId(TYPE_A, "ns1", "o1"),
				database.NewObjectId(TYPE_A, "ns2", "o1"),
			))
		})

		It("gets events for new objects", func() {
			h := &Handler{}
			MustBeSuccessful(db.RegisterHandler(h, false, TYPE_A, "ns3/sub1"))
			MustBeSuccessful(db.SetObject(NewA("ns3/sub1", "o2", "A-ns3/sub1-o2")))
			MustBeSuccessful(db.SetObject(NewA("ns4", "o2", "A-ns4-o2")))
			MustBeSuccessful(db.SetObject(NewB("ns3/sub1", "o3", "B-ns3/sub1-o3")))

			Expect(h.ids).To(ConsistOf(
				database.NewObjectId(TYPE_A, "ns3/sub1", "o2"),
			))

			db.UnregisterHandler(h, TYPE_A, "ns3/sub1")
			MustBeSuccessful(db.SetObject(NewA("ns3/sub1", "o4", "A-ns3/sub1-o4")))
			Expect(h.ids).To(HaveLen(1))
		})
	})

	Context("race condition detection", func() {
		It("increments generation", func() {
			id := database.NewObjectId(TYPE_A, "ns1", "o1")
			o1 := Must(db.GetObject(id))
			Expect(database.GetGeneration(o1)).To(Equal(int64(0)))

			o1.(*A).A = "modified"
			MustBeSuccessful(db.SetObject(o1))
			Expect(database.GetGeneration(o1)).To(Equal(int64(1)))

			o1 = Must(db.GetObject(id))
			Expect(database.GetGeneration(o1)).To(Equal(int64(1)))
			Expect(o1.GetData()).To(Equal("modified"))
		})

		It("detects race condition", func() {
			id := database.NewObjectId(TYPE_A, "ns1", "o1")
			o1 := Must(db.GetObject(id))
			o2 := Must(db.GetObject(id))

			o1.(*A).A = "modified"
			o2.(*A).A = "first"

			MustBeSuccessful(db.SetObject(o2))
			Expect(database.GetGeneration(o2)).To(Equal(int64(1)))

			Expect(db.SetObject(o1)).To(MatchError(database.ErrModified))

			o1 = Must(db.GetObject(id))
			Expect(o1.GetData()).To(Equal("first"))
		})

		It("modifies the stored version", func() {
			id := database.NewObjectId(TYPE_A, "ns1", "o1")
			o1 := Must(db.GetObject(id))
			o2 := Must(db.GetObject(id))

			o2.(*A).A = "first"
			MustBeSuccessful(db.SetObject(o2))

			modified := Must(database.CreateOrModify(db, &o1, func(o Object) bool {
				o.(*A).A += "+modified"
				return true
			}))
			Expect(modified).To(BeTrue())
			Expect(o1.GetData()).To(Equal("first+modified"))
			Expect(Must(db.GetObject(id)).GetData()).To(Equal("first+modified"))
		})

		It("keeps unchanged objects", func() {
			id := database.NewObjectId(TYPE_A, "ns1", "o1")
			o := Must(db.GetObject(id))
			modified := Must(database.CreateOrModify(db, &o, func(o Object) bool { return false }))
			Expect(modified).To(BeFalse())
			Expect(database.GetGeneration(o)).To(Equal(int64(0)))
		})

		It("creates missing objects", func() {
			var o Object = NewA("ns5", "o9", "created")
			modified := Must(database.CreateOrModify(db, &o, func(o Object) bool { return false }))
			Expect(modified).To(BeTrue())
			Expect(Must(db.GetObject(database.NewObjectId(TYPE_A, "ns5", "o9"))).GetData()).To(Equal("created"))
		})
	})
})

type Handler struct {
	lock sync.Mutex
	ids  []database.ObjectId
}

var _ database.EventHandler = (*Handler)(nil)

func (h *Handler) HandleEvent(id database.ObjectId) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.ids = append(h.ids, id)
}
