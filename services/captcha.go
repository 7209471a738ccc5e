package services

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/jara-travels/booking_api/shared"
)

const turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// CaptchaService exchanges Turnstile tokens with Cloudflare's verification
// endpoint. The site key is public; the secret key never leaves this service.
type CaptchaService struct {
	appContext.DefaultService

	httpClient *http.Client
	verifyURL  string
	secretKey  string
	siteKey    string
}

type turnstileResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

const CAPTCHA_SVC = "captcha_svc"

func (svc CaptchaService) Id() string {
	return CAPTCHA_SVC
}

func (svc *CaptchaService) Configure(ctx *appContext.Context) error {
	svc.httpClient = &http.Client{
		Timeout: 10 * time.Second,
	}
	svc.verifyURL = turnstileVerifyURL
	svc.secretKey = os.Getenv("TURNSTILE_SECRET_KEY")
	svc.siteKey = os.Getenv("TURNSTILE_SITE_KEY")
	return svc.DefaultService.Configure(ctx)
}

func (svc *CaptchaService) Start() error {
	if svc.secretKey == "" {
		log.Warn("TURNSTILE_SECRET_KEY not configured, captcha verification will reject all submissions")
	}
	return nil
}

func (svc *CaptchaService) SiteKey() string {
	return svc.siteKey
}

// Verify exchanges the widget token for a verdict. The caller's IP is
// forwarded only when it parses as a real IPv4/IPv6 address: Cloudflare
// fails verification outright on a malformed remoteip, so garbage from
// proxy headers is dropped rather than sent.
func (svc *CaptchaService) Verify(token, remoteIP string) (bool, error) {
	if token == "" {
		return false, nil
	}
	if svc.secretKey == "" {
		log.Error("TURNSTILE_SECRET_KEY not configured")
		return false, nil
	}

	params := url.Values{}
	params.Set("secret", svc.secretKey)
	params.Set("response", token)

	ip := shared.NormalizeIP(remoteIP)
	if ip != "" {
		params.Set("remoteip", ip)
	}

	resp, err := svc.httpClient.PostForm(svc.verifyURL, params)
	if err != nil {
		log.WithError(err).Error("Turnstile verification request failed")
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Error("Turnstile returned non-200 status")
		return false, nil
	}

	var result turnstileResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.WithError(err).Error("Failed to decode Turnstile response")
		return false, err
	}

	log.WithFields(log.Fields{
		"success":     result.Success,
		"error_codes": result.ErrorCodes,
		"has_ip":      ip != "",
	}).Info("Turnstile verification")

	return result.Success, nil
}
