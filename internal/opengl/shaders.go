package opengl

// maxPointLights bounds the point light uniform arrays.
const maxPointLights = 4

// vertSrc transforms positions by the row-vector MVP uploaded untransposed,
// which GLSL reads as its column-major transpose, so M*v is correct.
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

uniform mat4 mvp;
uniform mat4 model;

out vec3 fragPos;
out vec3 fragNormal;
out vec2 fragUV;

void main() {
    gl_Position = mvp * vec4(inPosition, 1.0);
    fragPos     = (model * vec4(inPosition, 1.0)).xyz;
    fragNormal  = mat3(model) * inNormal;
    fragUV      = inUV;
}
` + "\x00"

// fragSrc shades lit, unlit and transmissive surfaces. Output is linear HDR
// with premultiplied alpha; the post-process pass tone maps it.
const fragSrc = `
#version 410 core
in vec3 fragPos;
in vec3 fragNormal;
in vec2 fragUV;

out vec4 outColor;

const float PI = 3.14159265359;

uniform vec3  cameraPos;
uniform vec3  ambientColor;
uniform int   pointLightCount;
uniform vec3  pointLightPos[4];
uniform vec3  pointLightColor[4];
uniform float pointLightIntensity[4];

uniform vec4  matAlbedo;
uniform vec3  matEmissive;
uniform vec3  matAttenuation;
uniform vec3  matSpecularColor;
uniform float matRoughness;
uniform float matMetallic;
uniform float matTransmission;
uniform float matIOR;
uniform float matThickness;
uniform float matDispersion;
uniform float matSpecular;
uniform float matF0;
uniform bool  unlit;

uniform sampler2D albedoTex; // unit 0
uniform bool      hasTexture;
uniform sampler2D envMap;    // unit 1, equirectangular
uniform bool      hasEnv;
uniform float     envMaxLod;

vec2 equirectUV(vec3 d) {
    d = normalize(d);
    float u = atan(d.z, d.x) / (2.0 * PI) + 0.5;
    float v = 0.5 - asin(clamp(d.y, -1.0, 1.0)) / PI;
    return vec2(u, v);
}

vec3 sampleEnv(vec3 dir, float roughness) {
    return textureLod(envMap, equirectUV(dir), roughness * envMaxLod).rgb;
}

float distributionGGX(float NdotH, float a) {
    float a2 = a * a;
    float d  = NdotH * NdotH * (a2 - 1.0) + 1.0;
    return a2 / (PI * d * d);
}

float visibilitySmith(float NdotL, float NdotV, float a) {
    float k  = a * 0.5;
    float sl = NdotL / (NdotL * (1.0 - k) + k);
    float sv = NdotV / (NdotV * (1.0 - k) + k);
    return sl * sv / max(4.0 * NdotL * NdotV, 1e-4);
}

// refractedEnv looks through the surface with one IOR per channel.
vec3 refractedEnv(vec3 V, vec3 N) {
    float spread = (matIOR - 1.0) * 0.025 * matDispersion;
    vec3 iors = vec3(matIOR - spread, matIOR, matIOR + spread);
    vec3 c;
    c.r = sampleEnv(refract(-V, N, 1.0 / iors.r), matRoughness).r;
    c.g = sampleEnv(refract(-V, N, 1.0 / iors.g), matRoughness).g;
    c.b = sampleEnv(refract(-V, N, 1.0 / iors.b), matRoughness).b;
    return c;
}

void main() {
    vec4 base = matAlbedo;
    if (hasTexture) {
        base *= texture(albedoTex, fragUV);
    }
    if (unlit) {
        outColor = vec4(base.rgb * base.a, base.a);
        return;
    }

    vec3 N = normalize(fragNormal);
    if (!gl_FrontFacing) {
        N = -N;
    }
    vec3  V     = normalize(cameraPos - fragPos);
    float NdotV = max(dot(N, V), 1e-4);
    float a     = max(matRoughness * matRoughness, 0.002);

    vec3 F0   = mix(min(vec3(matF0) * matSpecularColor * matSpecular, vec3(1.0)), base.rgb, matMetallic);
    vec3 fres = F0 + (1.0 - F0) * pow(1.0 - NdotV, 5.0);
    vec3 diffuseColor = base.rgb * (1.0 - matMetallic) * (1.0 - matTransmission);

    vec3 direct = vec3(0.0);
    for (int i = 0; i < pointLightCount; i++) {
        vec3  L     = pointLightPos[i] - fragPos;
        float dist2 = max(dot(L, L), 0.01);
        L = normalize(L);
        float NdotL = max(dot(N, L), 0.0);
        if (NdotL <= 0.0) {
            continue;
        }
        vec3  H        = normalize(L + V);
        float NdotH    = max(dot(N, H), 0.0);
        vec3  radiance = pointLightColor[i] * pointLightIntensity[i] / dist2;
        vec3  spec     = fres * distributionGGX(NdotH, a) * visibilitySmith(NdotL, NdotV, a);
        direct += (diffuseColor / PI + spec) * radiance * NdotL;
    }

    vec3 color = direct + ambientColor * diffuseColor + matEmissive;
    float through = matTransmission * (1.0 - max(fres.r, max(fres.g, fres.b)));
    float alpha = base.a;

    if (hasEnv) {
        color += sampleEnv(reflect(-V, N), matRoughness) * fres;
    }
    if (matTransmission > 0.0) {
        vec3 transmittance = exp(-matAttenuation * matThickness);
        // Without an environment the scene behind shows through the blend
        // alone; with one, half the transmitted light is the dispersed
        // environment.
        float envShare = hasEnv ? 0.5 : 0.0;
        if (hasEnv) {
            color += refractedEnv(V, N) * base.rgb * transmittance * through * envShare;
        }
        alpha = 1.0 - through * (1.0 - envShare);
    }

    outColor = vec4(color, alpha);
}
` + "\x00"
