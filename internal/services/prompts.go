package services

// LLM prompt constants for the analysis collaborators. Each prompt demands
// strict JSON so responses can be validated at the boundary instead of
// coerced.

const (
	// CATEGORIZE_LOGS_PROMPT structures a raw log blob into per-line records
	// with a high-level category per line.
	CATEGORIZE_LOGS_PROMPT = `You are a log analysis expert. Your task is to process a block of raw log data and structure it.

CRITICAL INSTRUCTIONS:
- Return ONLY valid JSON in the exact format specified below
- Do not include any explanatory text, introductions, or markdown formatting

For each line in the log data:
1. Parse the line to extract its components: timestamp, log level, and message. Include the original line unchanged in your output.
2. Analyze the message content to determine a meaningful, high-level category. Examples: 'Authentication', 'Database', 'API Request', 'Performance', 'Background Job', 'Configuration'.
3. Be consistent: similar log messages receive the same category.
4. If a timestamp is not present or cannot be parsed, it MUST be null. Otherwise format it as ISO 8601.
5. If a log level is not explicit, infer it from the message content (words like 'failed' or 'error' imply 'ERROR') or default to 'INFO'.

REQUIRED JSON FORMAT:
{
  "logs": [
    {
      "originalLine": "the original, unmodified log line",
      "timestamp": "2024-01-15T10:30:00Z or null",
      "level": "INFO|WARN|ERROR|DEBUG",
      "message": "the main message content",
      "category": "concise high-level category"
    }
  ]
}

Log Data:
%s`

	// SUMMARIZE_LOGS_PROMPT produces a concise human-readable report.
	SUMMARIZE_LOGS_PROMPT = `You are an expert DevOps engineer specializing in analyzing server logs.

You will receive server logs as input and generate a concise, human-readable summary of the key events, errors, and performance metrics.

CRITICAL INSTRUCTIONS:
- Return ONLY valid JSON: {"summary": "your summary here"}
- No markdown, no text outside the JSON object

Log Data:
%s`

	// PROPOSE_SOLUTIONS_PROMPT asks for remediation proposals for the most
	// critical issues found in the logs. May legitimately return an empty
	// solutions array.
	PROPOSE_SOLUTIONS_PROMPT = `You are a world-class site reliability engineer (SRE) with deep expertise in root cause analysis.

Analyze the provided log data to identify critical errors, security threats, and performance bottlenecks.

For each major issue, provide a solution proposal with:
1. Title: a concise heading for the solution.
2. Root Cause Analysis: a thorough but easy-to-understand explanation of the fundamental problem, as plain text without any markdown formatting.
3. Steps: clear, actionable steps for an engineer. Each step is a complete, numbered sentence (e.g., "1. Investigate database performance."). No markdown.
4. Confidence Score: your confidence (0-100) that the analysis is correct.
5. Simulated Outcome: a small, realistic snippet of what the logs would look like after the fix, demonstrating a successful resolution.

If there are no critical issues, return an empty array for solutions.

CRITICAL INSTRUCTIONS:
- Return ONLY valid JSON in this exact format, nothing else:
{
  "solutions": [
    {
      "title": "...",
      "rootCauseAnalysis": "...",
      "steps": ["1. ...", "2. ..."],
      "confidenceScore": 85,
      "simulatedOutcome": "..."
    }
  ]
}

Log Data:
%s`

	// GENERATE_DIALOGUE_PROMPT turns the top-ranked solution into a short
	// two-speaker teaching script, ready for multi-voice speech synthesis.
	GENERATE_DIALOGUE_PROMPT = `You are an expert scriptwriter for technical educational content.

Create a short, insightful dialogue between a senior Site Reliability Engineer (SRE), "Speaker1", and a junior SRE, "Speaker2".

The dialogue must be based on the provided solution for an issue detected in server logs. The senior SRE explains the issue, its root cause, and the proposed step-by-step solution in a clear, mentoring tone. The junior SRE can ask clarifying questions.

Keep the dialogue concise and focused on the technical details.

CRITICAL INSTRUCTIONS:
- Return ONLY valid JSON: {"dialogue": "..."}
- The dialogue value is a single string with each line prefixed by "Speaker1: " or "Speaker2: "

Here is the analysis data:
%s`
)
