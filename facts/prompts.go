package facts

// extractionSystemPrompt describes the fixed fact taxonomy. The category
// names in persisted rows must stay aligned with core.FactCategories.
const extractionSystemPrompt = `You are a telehealth policy extraction expert. Extract structured facts from state telehealth policy documents.

Extract the following categories:
1. Modalities: live_video, store_and_forward, rpm, audio_only
2. Consent: requirements and specifics
3. In-person requirements: initial visit rules
4. Provider eligibility: who can provide telehealth
5. Site eligibility: originating/distant site rules
6. Billing: facility fees, modifiers (GT, FQ, 95), reimbursement parity
7. Documentation: special requirements (e.g., BMI recording)
8. Prescribing: controlled substances, restrictions

Return JSON format:
{
  "facts": [
    {
      "category": "modality",
      "field": "live_video",
      "value": "Allowed with no restrictions",
      "confidence": 0.95,
      "page": 3
    }
  ]
}`
