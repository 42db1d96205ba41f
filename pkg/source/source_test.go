package source_test

import (
	"bytes"
	"context"
	"fmt"
	"io"

	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/ifcimport/pkg/config"
	me "github.com/mandelsoft/ifcimport/pkg/source"
)

type bucket map[string][]byte

func (b bucket) GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := b[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, fmt.Errorf("no such key %s", aws.ToString(in.Key))
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

var _ = Describe("source", func() {
	ctx := context.Background()

	It("parses S3 locations", func() {
		b, k := Must2(me.ParseS3("s3://models/site/a.ifc"))
		Expect(b).To(Equal("models"))
		Expect(k).To(Equal("site/a.ifc"))

		_, _, err := me.ParseS3("s3://models")
		Expect(err).To(MatchError(me.ErrInvalidLocation))
		_, _, err = me.ParseS3("s3://models/")
		Expect(err).To(MatchError(me.ErrInvalidLocation))
		Expect(me.IsS3("/data/a.ifc")).To(BeFalse())
	})

	It("provides local files", func() {
		fs := memoryfs.New()
		MustBeSuccessful(vfs.WriteFile(fs, "/a.ifc", []byte("ISO-10303-21;"), 0o600))

		r := me.NewResolver(config.S3Config{}, fs)
		s := Must(r.Get(ctx, "/a.ifc"))
		Expect(s.FileSystem).To(BeIdenticalTo(fs))
		Expect(s.Path).To(Equal("/a.ifc"))
		MustBeSuccessful(s.Close())

		_, err := r.Get(ctx, "/b.ifc")
		Expect(err).To(MatchError(vfs.ErrNotExist))
	})

	It("downloads S3 objects", func() {
		r := me.NewResolver(config.S3Config{}).WithClient(bucket{"models/site/a.ifc": []byte("content")})
		s := Must(r.Get(ctx, "s3://models/site/a.ifc"))
		Expect(s.Path).To(Equal("a.ifc"))
		Expect(Must(vfs.ReadFile(s.FileSystem, s.Path))).To(Equal([]byte("content")))
		MustBeSuccessful(s.Close())

		_, err := r.Get(ctx, "s3://models/site/b.ifc")
		Expect(err).To(HaveOccurred())
	})
})
