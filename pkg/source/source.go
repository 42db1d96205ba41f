// Package source provides the input files of an import. Inputs are
// local files or objects in an S3 bucket given as s3://bucket/key,
// which are downloaded into a temporary filesystem.
package source

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mandelsoft/goutils/errors"
	"github.com/mandelsoft/goutils/general"
	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/ifcimport/pkg/config"
)

var REALM = logging.DefineRealm("ifcimport/source", "input acquisition")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

const S3_SCHEME = "s3://"

var ErrInvalidLocation = errors.New("invalid source location")

// Source is an input file on a virtual filesystem.
type Source struct {
	Location   string
	FileSystem vfs.FileSystem
	Path       string
	cleanup    vfs.FileSystem
}

// Close removes downloaded content.
func (s *Source) Close() error {
	if s.cleanup == nil {
		return nil
	}
	err := vfs.Cleanup(s.cleanup)
	s.cleanup = nil
	return err
}

// Getter reads objects from a bucket.
type Getter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Resolver provides sources for locations.
type Resolver struct {
	fs     vfs.FileSystem
	s3     config.S3Config
	client Getter
}

// NewResolver creates a resolver for local files on the given
// filesystem (default is the OS filesystem).
func NewResolver(cfg config.S3Config, fss ...vfs.FileSystem) *Resolver {
	return &Resolver{
		fs: general.OptionalDefaulted[vfs.FileSystem](osfs.OsFs, fss...),
		s3: cfg,
	}
}

// WithClient sets the client used for S3 locations.
func (r *Resolver) WithClient(c Getter) *Resolver {
	r.client = c
	return r
}

// IsS3 checks for an S3 location.
func IsS3(location string) bool {
	return strings.HasPrefix(strings.ToLower(location), S3_SCHEME)
}

// ParseS3 splits an S3 location into bucket and key.
func ParseS3(location string) (string, string, error) {
	if !IsS3(location) {
		return "", "", errors.Wrapf(ErrInvalidLocation, "%q is no S3 location", location)
	}
	rest := location[len(S3_SCHEME):]
	i := strings.Index(rest, "/")
	if i <= 0 || i == len(rest)-1 {
		return "", "", errors.Wrapf(ErrInvalidLocation, "%q requires bucket and key", location)
	}
	return rest[:i], rest[i+1:], nil
}

// Get provides the source for a location.
func (r *Resolver) Get(ctx context.Context, location string) (*Source, error) {
	if !IsS3(location) {
		ok, err := vfs.FileExists(r.fs, location)
		if err == nil && !ok {
			err = vfs.ErrNotExist
		}
		if err != nil {
			return nil, errors.Wrapf(err, "input %s", location)
		}
		return &Source{Location: location, FileSystem: r.fs, Path: location}, nil
	}
	return r.download(ctx, location)
}

func (r *Resolver) download(ctx context.Context, location string) (*Source, error) {
	bucket, key, err := ParseS3(location)
	if err != nil {
		return nil, err
	}
	client, err := r.getClient(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot get %s", location)
	}
	defer out.Body.Close()

	tmp, err := osfs.NewTempFileSystem()
	if err != nil {
		return nil, err
	}
	name := path.Base(key)
	w, err := tmp.Create(name)
	if err == nil {
		_, err = io.Copy(w, out.Body)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		vfs.Cleanup(tmp)
		return nil, errors.Wrapf(err, "cannot download %s", location)
	}
	log.Debug("downloaded {{location}}", "location", location)
	return &Source{Location: location, FileSystem: tmp, Path: name, cleanup: tmp}, nil
}

func (r *Resolver) getClient(ctx context.Context) (Getter, error) {
	if r.client != nil {
		return r.client, nil
	}
	var opts []func(*awsconfig.LoadOptions) error
	if r.s3.Region != "" {
		opts = append(opts, awsconfig.WithRegion(r.s3.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load AWS configuration")
	}
	r.client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = r.s3.PathStyle
		if r.s3.Endpoint != "" {
			o.BaseEndpoint = aws.String(r.s3.Endpoint)
		}
	})
	return r.client, nil
}
