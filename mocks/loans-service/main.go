package main

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"time"
)

const (
	defaultPort      = "8090"
	defaultLatencyMs = "20"
	correlationIDHdr = "eazybank-correlation-id"
)

type LoansDto struct {
	MobileNumber      string `json:"mobileNumber"`
	LoanNumber        string `json:"loanNumber"`
	LoanType          string `json:"loanType"`
	TotalLoan         int64  `json:"totalLoan"`
	AmountPaid        int64  `json:"amountPaid"`
	OutstandingAmount int64  `json:"outstandingAmount"`
}

type ErrorResponseDto struct {
	APIPath      string `json:"apiPath"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
	ErrorTime    string `json:"errorTime"`
}

var (
	latencyMs    = getEnvInt("LATENCY_MS", defaultLatencyMs)
	mobileNumber = regexp.MustCompile(`^[0-9]{10}$`)
)

// Magic mobile numbers let e2e runs drive the failure paths of the accounts client.
const (
	mobileNotFound  = "0000000000"
	mobileServerErr = "5000000000"
	mobileSlow      = "9999999999"
	mobileGarbage   = "7777777777"
)

func main() {
	port := getEnv("PORT", defaultPort)

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/api/fetch", handleFetch)

	log.Printf("🏦 Mock Loans service starting on port %s", port)
	log.Printf("⏱️  Simulated latency: %dms", latencyMs)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "loans",
	})
}

func handleFetch(w http.ResponseWriter, r *http.Request) {
	time.Sleep(time.Duration(latencyMs) * time.Millisecond)

	correlationID := r.Header.Get(correlationIDHdr)
	log.Printf("📥 %s %s correlation-id=%s", r.Method, r.URL.Path, correlationID)

	if r.Method != http.MethodGet {
		sendError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is supported")
		return
	}

	mobile := r.URL.Query().Get("mobileNumber")
	if !mobileNumber.MatchString(mobile) {
		sendError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Mobile number must be 10 digits")
		return
	}

	switch mobile {
	case mobileNotFound:
		sendError(w, r, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("Loan not found with the given input data mobileNumber : '%s'", mobile))
		return
	case mobileServerErr:
		sendError(w, r, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Simulated failure")
		return
	case mobileSlow:
		time.Sleep(30 * time.Second)
	case mobileGarbage:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"mobileNumber":`))
		return
	}

	w.Header().Set(correlationIDHdr, correlationID)
	writeJSON(w, http.StatusOK, generateLoan(mobile))
	log.Printf("✅ Loan lookup successful for ******%s", mobile[len(mobile)-4:])
}

// generateLoan derives stable loan data from the mobile number.
func generateLoan(mobile string) LoansDto {
	sum := sha256.Sum256([]byte(mobile))
	seed := binary.BigEndian.Uint64(sum[:8])

	types := []string{"Home Loan", "Vehicle Loan", "Personal Loan"}
	total := int64(100000 * (1 + seed%10))
	paid := int64(seed % uint64(total))

	return LoansDto{
		MobileNumber:      mobile,
		LoanNumber:        fmt.Sprintf("5%011d", seed%100000000000),
		LoanType:          types[seed%uint64(len(types))],
		TotalLoan:         total,
		AmountPaid:        paid,
		OutstandingAmount: total - paid,
	}
}

func sendError(w http.ResponseWriter, r *http.Request, code int, errorCode, message string) {
	writeJSON(w, code, ErrorResponseDto{
		APIPath:      "uri=" + r.URL.Path,
		ErrorCode:    errorCode,
		ErrorMessage: message,
		ErrorTime:    time.Now().Format("2006-01-02T15:04:05"),
	})
	log.Printf("❌ Error response: %d - %s", code, message)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key, defaultValue string) int {
	value := getEnv(key, defaultValue)
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️  Invalid integer value for %s, using default: %s", key, defaultValue)
		intValue, _ = strconv.Atoi(defaultValue)
	}
	return intValue
}
