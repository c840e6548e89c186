package hmrc

import (
	"bytes"
	"crypto/sha1"
	"encoding/base32"
	"encoding/base64"

	"github.com/beevik/etree"
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"github.com/pkg/errors"
	dsig "github.com/russellhaering/goxmldsig"
)

// IRmark is the SHA-1 digest of the canonical message body in both the
// encodings HMRC uses: base64 in the envelope, base32 on receipts.
type IRmark struct {
	Base64 string
	Base32 string
}

// ComputeIRmark derives the IRmark of a serialized GovTalk message. Any
// IRmark element already present is excluded from the digest, so the value
// is the same before and after the mark is inserted.
func ComputeIRmark(envelope []byte) (IRmark, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(envelope); err != nil {
		return IRmark{}, markError("parse", err)
	}

	root := doc.Root()
	if root == nil {
		return IRmark{}, markError("parse", errors.New("envelope has no root element"))
	}
	body := root.SelectElement("Body")
	if body == nil {
		return IRmark{}, markError("locate body", errors.New("envelope has no Body element"))
	}

	for _, mark := range body.FindElements(".//IRmark") {
		if parent := mark.Parent(); parent != nil {
			parent.RemoveChild(mark)
		}
	}

	// The body is canonicalized as if it stood alone, so it must carry the
	// envelope namespace it would otherwise inherit.
	body.CreateAttr("xmlns", NamespaceEnvelope)

	canonical, err := dsig.MakeC14N10RecCanonicalizer().Canonicalize(body)
	if err != nil {
		return IRmark{}, markError("canonicalize", err)
	}
	canonical = bytes.ReplaceAll(canonical, []byte("\r\n"), []byte("\n"))

	sum := sha1.Sum(canonical)
	return IRmark{
		Base64: base64.StdEncoding.EncodeToString(sum[:]),
		Base32: base32.StdEncoding.EncodeToString(sum[:]),
	}, nil
}

// VerifyIRmark recomputes the mark of a signed envelope and compares it
// with the value it carries.
func VerifyIRmark(envelope []byte) (bool, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(envelope); err != nil {
		return false, markError("parse", err)
	}
	el := doc.FindElement("//IRmark")
	if el == nil {
		return false, markError("locate irmark", errors.New("envelope carries no IRmark"))
	}

	mark, err := ComputeIRmark(envelope)
	if err != nil {
		return false, err
	}
	return el.Text() == mark.Base64, nil
}

func markError(stage string, err error) error {
	return &business.IntegrityMarkComputationError{Stage: stage, Err: err}
}
