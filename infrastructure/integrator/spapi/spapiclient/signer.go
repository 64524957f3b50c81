package spapiclient

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	signingAlgorithm = "AWS4-HMAC-SHA256"
	signingService   = "execute-api"
	signedHeaders    = "host;x-amz-access-token;x-amz-date"
	amzDateFormat    = "20060102T150405Z"
	shortDateFormat  = "20060102"

	HeaderAccessToken = "x-amz-access-token"
	HeaderAmzDate     = "x-amz-date"
)

// EmptyPayloadHash é o sha256 da string vazia, usado em requisições sem corpo.
const EmptyPayloadHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

// Signer gera os headers de autenticação de cada chamada. Sem chaves configuradas
// apenas o access token é enviado.
type Signer struct {
	accessKey string
	secretKey string
	region    string
	service   string
	now       func() time.Time
}

// NewSigner cria o assinador de requisições. Sem accessKey e secretKey as requisições seguem só com o token.
func NewSigner(accessKey, secretKey, region string) *Signer {
	return &Signer{
		accessKey: accessKey,
		secretKey: secretKey,
		region:    region,
		service:   signingService,
		now:       time.Now,
	}
}

// Enabled indica se há chaves para gerar o header Authorization.
func (s *Signer) Enabled() bool {
	return s != nil && s.accessKey != "" && s.secretKey != ""
}

// Sign preenche os headers host, x-amz-access-token, x-amz-date e, quando houver chaves, Authorization.
func (s *Signer) Sign(req *http.Request, token string, body []byte) {
	now := time.Now().UTC()
	if s != nil {
		now = s.now().UTC()
	}
	amzDate := now.Format(amzDateFormat)

	req.Header.Set(HeaderAccessToken, token)
	req.Header.Set(HeaderAmzDate, amzDate)

	if !s.Enabled() {
		return
	}

	host := req.URL.Host
	canonical := CanonicalRequest(req.Method, req.URL, host, token, amzDate, body)

	date := now.Format(shortDateFormat)
	scope := strings.Join([]string{date, s.region, s.service, "aws4_request"}, "/")

	stringToSign := strings.Join([]string{
		signingAlgorithm,
		amzDate,
		scope,
		hashHex([]byte(canonical)),
	}, "\n")

	key := deriveSigningKey(s.secretKey, date, s.region, s.service)
	signature := hex.EncodeToString(hmacSHA256(key, stringToSign))

	req.Header.Set("Authorization", fmt.Sprintf(
		"%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		signingAlgorithm, s.accessKey, scope, signedHeaders, signature,
	))
}

// CanonicalRequest monta a representação determinística da requisição usada na assinatura.
func CanonicalRequest(method string, u *url.URL, host, token, amzDate string, body []byte) string {
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}

	headers := "host:" + host + "\n" +
		HeaderAccessToken + ":" + strings.TrimSpace(token) + "\n" +
		HeaderAmzDate + ":" + amzDate + "\n"

	return strings.Join([]string{
		strings.ToUpper(method),
		path,
		CanonicalQuery(u.Query()),
		headers,
		signedHeaders,
		payloadHash(body),
	}, "\n")
}

// CanonicalQuery ordena os parâmetros por chave e valor, codificados em RFC 3986.
func CanonicalQuery(values url.Values) string {
	if len(values) == 0 {
		return ""
	}

	encoded := make(map[string][]string, len(values))
	keys := make([]string, 0, len(values))
	for key, vals := range values {
		k := rfc3986Escape(key)
		keys = append(keys, k)
		for _, v := range vals {
			encoded[k] = append(encoded[k], rfc3986Escape(v))
		}
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		vals := encoded[k]
		sort.Strings(vals)
		for _, v := range vals {
			pairs = append(pairs, k+"="+v)
		}
	}

	return strings.Join(pairs, "&")
}

func rfc3986Escape(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	return strings.ReplaceAll(escaped, "%7E", "~")
}

func payloadHash(body []byte) string {
	if len(body) == 0 {
		return EmptyPayloadHash
	}
	return hashHex(body)
}

// deriveSigningKey aplica a cadeia data -> região -> serviço -> aws4_request.
func deriveSigningKey(secret, date, region, service string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+secret), date)
	kRegion := hmacSHA256(kDate, region)
	kService := hmacSHA256(kRegion, service)
	return hmacSHA256(kService, "aws4_request")
}

func hmacSHA256(key []byte, data string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(data))
	return mac.Sum(nil)
}

func hashHex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
