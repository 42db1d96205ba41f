package dbdoc_test

import (
	"sync"

	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/ifcimport/pkg/database"
	"github.com/mandelsoft/ifcimport/pkg/host"
	"github.com/mandelsoft/ifcimport/pkg/impl/database/filesystem"

	me "github.com/mandelsoft/ifcimport/pkg/host/dbdoc"
)

type handler struct {
	lock sync.Mutex
	ids  []database.ObjectId
}

func (h *handler) HandleEvent(id database.ObjectId) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.ids = append(h.ids, id)
}

var _ = Describe("database document", func() {
	var fs vfs.FileSystem
	var doc *me.Document

	BeforeEach(func() {
		fs = memoryfs.New()
		doc = Must(me.Open("model", filesystem.NewSpecification[me.Object]("/db", fs)))
	})

	It("persists committed elements", func() {
		h := &handler{}
		MustBeSuccessful(doc.Watch(h, false))

		tx := Must(doc.Begin("import"))
		id := Must(doc.CreateElement(host.KIND_SHAPE, "IfcWall", host.NewGeometry(host.Identity, host.Shape{Source: 4, Transform: host.Identity}), 4))
		MustBeSuccessful(doc.SetParameter(id, "", "IfcName", host.StringValue("Wall"), 4))
		Expect(h.ids).To(BeEmpty())
		MustBeSuccessful(tx.Commit())

		Expect(Must(fs.Stat("/db/Element/model/" + string(id) + ".yaml")).IsDir()).To(BeFalse())
		Expect(h.ids).To(ConsistOf(database.NewObjectId(me.TYPE_ELEMENT, "model", string(id))))

		other := Must(me.Open("model", filesystem.NewSpecification[me.Object]("/db", fs)))
		e := Must(other.LookupElement(id))
		Expect(e).NotTo(BeNil())
		Expect(e.Category).To(Equal("IfcWall"))
		Expect(e.Geometry.Shapes).To(HaveLen(1))
		Expect(e.Parameter("IfcName").Text()).To(Equal("Wall"))
	})

	It("discards elements on rollback", func() {
		tx := Must(doc.Begin("import"))
		id := Must(doc.CreateElement(host.KIND_SHAPE, "IfcWall", nil, 4))
		Expect(Must(doc.LookupElement(id))).NotTo(BeNil())
		MustBeSuccessful(tx.Rollback())
		MustBeSuccessful(tx.Rollback())

		Expect(Must(doc.LookupElement(id))).To(BeNil())
		Expect(Must(doc.Elements())).To(BeEmpty())
	})

	It("updates existing elements only if modified", func() {
		tx := Must(doc.Begin("first"))
		id := Must(doc.CreateElement(host.KIND_GROUP, "IfcZone", nil, 7))
		MustBeSuccessful(doc.SetParameter(id, "", "IfcName", host.StringValue("Zone"), 7))
		MustBeSuccessful(tx.Commit())

		h := &handler{}
		MustBeSuccessful(doc.Watch(h, false))

		tx = Must(doc.Begin("second"))
		MustBeSuccessful(doc.SetParameter(id, "", "IfcName", host.StringValue("Zone"), 7))
		MustBeSuccessful(tx.Commit())
		Expect(h.ids).To(BeEmpty())

		tx = Must(doc.Begin("third"))
		MustBeSuccessful(doc.SetParameter(id, "", "IfcDescription", host.StringValue("first floor"), 7))
		MustBeSuccessful(tx.Commit())
		Expect(h.ids).To(HaveLen(1))

		e := Must(doc.LookupElement(id))
		Expect(e.Parameters).To(HaveLen(2))
		Expect(Must(doc.Elements())).To(HaveLen(1))
	})

	It("rejects unknown elements", func() {
		tx := Must(doc.Begin("import"))
		defer tx.Rollback()
		Expect(doc.SetParameter("unknown", "", "IfcName", host.StringValue("x"), 1)).To(MatchError(host.ErrUnknownElement))
	})
})
